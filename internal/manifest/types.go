package manifest

import "strings"

// Extension type values for the manifest type discriminator.
const (
	TypeModule  = "module"
	TypeTheme   = "theme"
	TypeProfile = "profile"
)

// InfoSuffix is the filename suffix of an extension manifest.
const InfoSuffix = ".info.yml"

// StateFile is the site configuration file listing installed extensions.
const StateFile = "core.extension.yml"

// TestingPackage is the package name reserved for test-only fixtures.
const TestingPackage = "Testing"

// Info holds the fields of an .info.yml manifest.
type Info struct {
	Name                   string   `yaml:"name" json:"name"`
	Type                   string   `yaml:"type" json:"type"`
	Description            string   `yaml:"description,omitempty" json:"description,omitempty"`
	Package                string   `yaml:"package,omitempty" json:"package,omitempty"`
	Version                string   `yaml:"version,omitempty" json:"version,omitempty"`
	Core                   string   `yaml:"core,omitempty" json:"core,omitempty"`
	CoreVersionRequirement string   `yaml:"core_version_requirement,omitempty" json:"core_version_requirement,omitempty"`
	Dependencies           []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Hidden                 bool     `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	BaseTheme              string   `yaml:"base theme,omitempty" json:"base_theme,omitempty"`
	Lifecycle              string   `yaml:"lifecycle,omitempty" json:"lifecycle,omitempty"`
}

// IsTesting reports whether the manifest belongs to the Testing package.
func (i *Info) IsTesting() bool {
	return i.Package == TestingPackage
}

// DependencyNames returns the bare machine names of the declared
// dependencies, dropping "project:" prefixes and version constraints.
// "drupal:node (>=9.1)" becomes "node".
func (i *Info) DependencyNames() []string {
	names := make([]string, 0, len(i.Dependencies))
	for _, dep := range i.Dependencies {
		name := strings.TrimSpace(dep)
		if idx := strings.Index(name, " "); idx >= 0 {
			name = name[:idx]
		}
		if idx := strings.LastIndex(name, ":"); idx >= 0 {
			name = name[idx+1:]
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// State mirrors core.extension.yml. Module and Theme map machine names
// to install weights; Profile names the install profile.
type State struct {
	Module  map[string]int `yaml:"module"`
	Theme   map[string]int `yaml:"theme"`
	Profile string         `yaml:"profile"`
}

// IsInstalled reports whether an extension of the given type is recorded
// as installed. The install profile counts as installed whether it is named
// by the profile key or listed among the modules.
func (s *State) IsInstalled(typ, name string) bool {
	if s == nil {
		return false
	}
	switch typ {
	case TypeModule:
		_, ok := s.Module[name]
		return ok
	case TypeTheme:
		_, ok := s.Theme[name]
		return ok
	case TypeProfile:
		if s.Profile == name {
			return true
		}
		_, ok := s.Module[name]
		return ok
	default:
		return false
	}
}

// Weight returns the install weight recorded for a module or theme.
func (s *State) Weight(typ, name string) int {
	if s == nil {
		return 0
	}
	switch typ {
	case TypeModule, TypeProfile:
		return s.Module[name]
	case TypeTheme:
		return s.Theme[name]
	default:
		return 0
	}
}
