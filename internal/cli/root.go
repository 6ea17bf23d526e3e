package cli

import (
	"github.com/extctl/extctl/internal/branding"
	"github.com/extctl/extctl/internal/config"
	"github.com/extctl/extctl/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` lists the modules, themes and install profiles of a site,
filtered by install status and by origin (core or contributed).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logging.SetDefaultStructuredLoggerWithLevel(branding.CLIName(), buildVersion, config.Get(config.KeyLogLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().String(flagName(config.KeyRoot), "", "Site app root (default from config, or the current directory)")
	rootCmd.PersistentFlags().String(flagName(config.KeyConfigDir), "", "Directory holding core.extension.yml (default <root>/../config/sync)")
	rootCmd.PersistentFlags().String(flagName(config.KeyLogLevel), "", "Log level: debug, info, warn, error")

	// Flags take precedence over the config file and EXTCTL_* variables.
	for _, key := range []string{config.KeyRoot, config.KeyConfigDir, config.KeyLogLevel} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flagName(key)))
	}
}

// flagName maps a config key to its command-line flag.
func flagName(key string) string {
	switch key {
	case config.KeyConfigDir:
		return "config-dir"
	case config.KeyLogLevel:
		return "log-level"
	default:
		return key
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
