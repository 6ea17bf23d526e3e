// Package cli defines the Cobra command tree for the extctl CLI. Each file
// registers one top-level command with the root command. Commands delegate
// discovery and filtering to the extension and discovery packages and only
// handle flags, site resolution and output formatting.
package cli
