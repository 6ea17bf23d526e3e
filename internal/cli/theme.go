package cli

import (
	"github.com/extctl/extctl/internal/extension"
	"github.com/spf13/cobra"
)

func init() {
	themeCmd.AddCommand(newListCmd(extension.TypeTheme))
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect site themes",
}
