package cli

import (
	"github.com/extctl/extctl/internal/extension"
	"github.com/spf13/cobra"
)

func init() {
	profileCmd.AddCommand(newListCmd(extension.TypeProfile))
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect install profiles",
}
