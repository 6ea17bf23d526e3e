// Package manifest parses and validates extension metadata: the
// <name>.info.yml manifest that describes a module, theme or profile, and
// the core.extension.yml site configuration that records which extensions
// are installed.
package manifest
