package extension

import (
	"errors"
	"fmt"

	"github.com/extctl/extctl/internal/manifest"
)

// Type is the kind of an extension.
type Type string

const (
	TypeModule  Type = manifest.TypeModule
	TypeTheme   Type = manifest.TypeTheme
	TypeProfile Type = manifest.TypeProfile
)

// Types lists every extension type in discovery order.
var Types = []Type{TypeModule, TypeTheme, TypeProfile}

// ErrUnknownType is returned when a string does not name an extension type.
var ErrUnknownType = errors.New("unknown extension type")

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownType, s)
}

// OriginCore marks extensions shipped with the framework core. Any other
// origin value counts as non-core.
const OriginCore = "core"

// Record is a single extension as reported by a Discoverer.
type Record struct {
	Name      string
	Type      Type
	Origin    string
	Installed bool // false when the discoverer has no status for the extension
	Weight    int

	Pathname string // manifest path relative to the app root
	Filename string // main extension file, e.g. "node.module"; may be empty

	Info *manifest.Info
}

// IsCore reports whether the record belongs to the core distribution.
func (r Record) IsCore() bool {
	return r.Origin == OriginCore
}

// Discoverer finds the extensions available to a site.
type Discoverer interface {
	// RebuildModuleData refreshes module status and origin metadata so a
	// following Scan reflects the current site state.
	RebuildModuleData() error
	// Scan returns every extension of type t, in a stable order.
	Scan(t Type) ([]Record, error)
}
