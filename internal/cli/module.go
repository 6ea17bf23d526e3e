package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/extctl/extctl/internal/config"
	"github.com/extctl/extctl/internal/discovery"
	"github.com/extctl/extctl/internal/extension"
	"github.com/extctl/extctl/internal/manifest"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var moduleInfoJSON bool

var titleCaser = cases.Title(language.English)

func init() {
	moduleInfoCmd.Flags().BoolVar(&moduleInfoJSON, "json", false, "Output in JSON format")

	moduleCmd.AddCommand(newListCmd(extension.TypeModule))
	moduleCmd.AddCommand(moduleInfoCmd)
	rootCmd.AddCommand(moduleCmd)
}

var moduleCmd = &cobra.Command{
	Use:     "module",
	Aliases: []string{"mod"},
	Short:   "Inspect site modules",
}

var moduleInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for one module",
	Long: `Show details for one module: location, install status, manifest
metadata and any schema problems in its .info.yml.

Example:
  extctl module info node
  extctl module info token --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := openSite().FindModule(args[0])
		if err != nil {
			return err
		}
		if ext == nil {
			return fmt.Errorf("module %q not found", args[0])
		}

		details := newModuleDetails(ext, config.Get(config.KeyCoreVersion))
		if moduleInfoJSON {
			return writeJSON(cmd.OutOrStdout(), details)
		}
		return writeModuleDetails(cmd.OutOrStdout(), details)
	},
}

// moduleDetails is the output of "module info".
type moduleDetails struct {
	listEntry
	Package      string   `json:"package,omitempty"`
	Filename     string   `json:"filename,omitempty"`
	FullPath     string   `json:"full_path"`
	Weight       int      `json:"weight"`
	Requirement  string   `json:"core_version_requirement,omitempty"`
	Compatible   *bool    `json:"compatible,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Issues       []string `json:"issues,omitempty"`
}

func newModuleDetails(ext *extension.Extension, coreVersion string) moduleDetails {
	d := moduleDetails{
		listEntry: newListEntry(ext),
		Filename:  ext.Filename(),
		FullPath:  ext.Path(true),
		Weight:    ext.Weight(),
	}

	if info := ext.Info(); info != nil {
		d.Package = info.Package
		d.Requirement = info.CoreVersionRequirement
		d.Dependencies = info.DependencyNames()
		if coreVersion != "" {
			if ok, err := discovery.Compatible(info.CoreVersionRequirement, coreVersion); err == nil {
				d.Compatible = &ok
			} else {
				d.Issues = append(d.Issues, err.Error())
			}
		}
	}

	result, err := manifest.ValidateInfoFile(filepath.Join(ext.Path(true), filepath.Base(ext.Pathname())))
	if err != nil {
		d.Issues = append(d.Issues, err.Error())
	} else {
		for _, issue := range result.Issues {
			d.Issues = append(d.Issues, issue.String())
		}
	}
	return d
}

func writeModuleDetails(w io.Writer, d moduleDetails) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", d.Name)
	fmt.Fprintf(tw, "Label:\t%s\n", d.Label)
	fmt.Fprintf(tw, "Type:\t%s\n", titleCaser.String(d.Type))
	fmt.Fprintf(tw, "Status:\t%s\n", d.Status)
	fmt.Fprintf(tw, "Origin:\t%s\n", d.Origin)
	if d.Package != "" {
		fmt.Fprintf(tw, "Package:\t%s\n", d.Package)
	}
	if d.Version != "" {
		fmt.Fprintf(tw, "Version:\t%s\n", d.Version)
	}
	fmt.Fprintf(tw, "Path:\t%s\n", d.Path)
	if d.Filename != "" {
		fmt.Fprintf(tw, "Filename:\t%s\n", d.Filename)
	}
	if d.Requirement != "" {
		fmt.Fprintf(tw, "Core requirement:\t%s\n", d.Requirement)
	}
	if d.Compatible != nil {
		fmt.Fprintf(tw, "Compatible:\t%t\n", *d.Compatible)
	}
	if len(d.Dependencies) > 0 {
		fmt.Fprintf(tw, "Dependencies:\t%s\n", strings.Join(d.Dependencies, ", "))
	}
	if d.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", d.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.Issues) > 0 {
		fmt.Fprintln(w, "\nManifest issues:")
		for _, issue := range d.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}
	return nil
}
