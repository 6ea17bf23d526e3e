package cli

import (
	"log/slog"

	"github.com/extctl/extctl/internal/config"
	"github.com/extctl/extctl/internal/discovery"
	"github.com/extctl/extctl/internal/extension"
)

// openSite builds an extension manager for the configured app root.
func openSite() *extension.Manager {
	root := config.Get(config.KeyRoot)
	scanner := discovery.New(root,
		discovery.WithConfigDir(config.Get(config.KeyConfigDir)),
		discovery.WithIncludeTests(config.GetBool(config.KeyIncludeTests)),
		discovery.WithLogger(slog.Default()),
	)
	slog.Debug("opening site", "root", root, "state", scanner.StatePath())
	return extension.New(root, scanner)
}
