package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/extctl/extctl/internal/config"
	"github.com/extctl/extctl/internal/discovery"
	"github.com/extctl/extctl/internal/extension"
	"github.com/spf13/cobra"
)

// Values accepted by --status and --type.
const (
	filterAll         = "all"
	statusInstalled   = "installed"
	statusUninstalled = "uninstalled"
	originCore        = "core"
	originNoCore      = "no-core"
)

// listOptions holds the flags shared by the module, theme and profile list commands.
type listOptions struct {
	status     string
	origin     string
	nameOnly   bool
	json       bool
	compatible bool
}

// listEntry is one extension as printed by a list command.
type listEntry struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Origin      string `json:"origin"`
	Version     string `json:"version,omitempty"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// newListCmd builds the "list" subcommand for one extension type.
func newListCmd(t extension.Type) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s extensions", t),
		Long: fmt.Sprintf(`List the %[1]s extensions of the site.

By default every %[1]s is shown. Narrow the list with --status and --type.

Example:
  extctl %[1]s list --status installed --type no-core
  extctl %[1]s list --name-only`, t),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, t, opts)
		},
	}
	addListFlags(cmd, opts)
	return cmd
}

// newTypedListCmd builds the top-level "list <type>" command.
func newTypedListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list <module|theme|profile>",
		Short: "List extensions of one type",
		Long: `List the modules, themes or install profiles of the site.

Same as "extctl <type> list".

Example:
  extctl list theme --status installed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := extension.ParseType(args[0])
			if err != nil {
				return err
			}
			return runList(cmd, t, opts)
		},
	}
	addListFlags(cmd, opts)
	return cmd
}

func init() {
	rootCmd.AddCommand(newTypedListCmd())
}

func runList(cmd *cobra.Command, t extension.Type, opts *listOptions) error {
	m := openSite().Discover(t)
	if err := applyFilters(m, opts.status, opts.origin); err != nil {
		return err
	}
	return writeList(cmd.OutOrStdout(), m, opts)
}

func addListFlags(cmd *cobra.Command, opts *listOptions) {
	cmd.Flags().StringVar(&opts.status, "status", filterAll, "Install status: installed, uninstalled or all")
	cmd.Flags().StringVar(&opts.origin, "type", filterAll, "Origin: core, no-core or all")
	cmd.Flags().BoolVar(&opts.nameOnly, "name-only", false, "Print machine names only")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.compatible, "compatible", false, "Only show extensions compatible with the configured core_version")
}

// applyFilters opts the manager into the requested status and origin.
func applyFilters(m *extension.Manager, status, origin string) error {
	switch status {
	case statusInstalled:
		m.ShowInstalled()
	case statusUninstalled:
		m.ShowUninstalled()
	case filterAll, "":
		m.ShowInstalled().ShowUninstalled()
	default:
		return fmt.Errorf("invalid --status %q: want installed, uninstalled or all", status)
	}

	switch origin {
	case originCore:
		m.ShowCore()
	case originNoCore:
		m.ShowNoCore()
	case filterAll, "":
		m.ShowCore().ShowNoCore()
	default:
		return fmt.Errorf("invalid --type %q: want core, no-core or all", origin)
	}
	return nil
}

// writeList prints the manager's visible extensions.
func writeList(w io.Writer, m *extension.Manager, opts *listOptions) error {
	if opts.nameOnly && !opts.compatible {
		names, err := m.Names()
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(w, names)
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	}

	exts, err := m.Extensions()
	if err != nil {
		return err
	}

	coreVersion := config.Get(config.KeyCoreVersion)
	if opts.compatible && coreVersion == "" {
		return fmt.Errorf("--compatible needs core_version; run 'extctl config set %s <version>'", config.KeyCoreVersion)
	}

	entries := []listEntry{}
	for pair := exts.Oldest(); pair != nil; pair = pair.Next() {
		ext := pair.Value
		if opts.compatible {
			ok, err := isCompatible(ext, coreVersion)
			if err != nil {
				slog.Warn("skipping extension with unreadable core requirement", "name", ext.Name(), "path", ext.Pathname(), "error", err)
				continue
			}
			if !ok {
				continue
			}
		}
		entries = append(entries, newListEntry(ext))
	}

	if opts.nameOnly {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		if opts.json {
			return writeJSON(w, names)
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	}

	if opts.json {
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "No %ss found.\n", m.Current())
		return nil
	}
	return writeTable(w, entries)
}

func newListEntry(ext *extension.Extension) listEntry {
	e := listEntry{
		Name:   ext.Name(),
		Label:  ext.Label(),
		Type:   string(ext.Type()),
		Status: statusLabel(ext.Installed()),
		Origin: ext.Origin(),
		Path:   ext.Path(false),
	}
	if info := ext.Info(); info != nil {
		e.Version = info.Version
		e.Description = info.Description
	}
	return e
}

func statusLabel(installed bool) string {
	if installed {
		return statusInstalled
	}
	return statusUninstalled
}

func isCompatible(ext *extension.Extension, coreVersion string) (bool, error) {
	info := ext.Info()
	if info == nil {
		return true, nil
	}
	return discovery.Compatible(info.CoreVersionRequirement, coreVersion)
}

func writeTable(w io.Writer, entries []listEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tSTATUS\tORIGIN\tVERSION\tPATH")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.Name, e.Label, e.Status, e.Origin, version, e.Path)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
