package extension

import (
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Manager discovers, caches and filters extensions. It is not safe for
// concurrent use.
//
// Configuration methods return the Manager so calls can be chained.
// A discovery error is kept on the Manager and reported by the next
// Names, Extensions, List or FindModule call.
type Manager struct {
	appRoot    string
	discoverer Discoverer

	cache   map[Type][]Record
	filter  Filter
	current Type
	err     error
}

// New returns a Manager for the site at appRoot.
func New(appRoot string, d Discoverer) *Manager {
	m := &Manager{
		appRoot:    appRoot,
		discoverer: d,
	}
	m.initialize()
	return m
}

// initialize clears the cache for every type, resets the filter and points
// the manager back at modules.
func (m *Manager) initialize() {
	m.current = TypeModule
	m.cache = make(map[Type][]Record, len(Types))
	m.filter = Filter{}
	m.err = nil
}

// ShowInstalled admits installed extensions.
func (m *Manager) ShowInstalled() *Manager {
	m.filter.Installed = true
	return m
}

// ShowUninstalled admits extensions that are not installed.
func (m *Manager) ShowUninstalled() *Manager {
	m.filter.Uninstalled = true
	return m
}

// ShowCore admits extensions from the core distribution.
func (m *Manager) ShowCore() *Manager {
	m.filter.Core = true
	return m
}

// ShowNoCore admits contributed and custom extensions.
func (m *Manager) ShowNoCore() *Manager {
	m.filter.NonCore = true
	return m
}

// Filter returns the filter currently in effect.
func (m *Manager) Filter() Filter {
	return m.filter
}

// Current returns the type that Names and Extensions operate on.
func (m *Manager) Current() Type {
	return m.current
}

// Err returns the error from the last discovery, if any.
func (m *Manager) Err() error {
	return m.err
}

// DiscoverModules resets the manager and discovers modules.
func (m *Manager) DiscoverModules() *Manager {
	return m.Discover(TypeModule)
}

// DiscoverThemes resets the manager and discovers themes.
func (m *Manager) DiscoverThemes() *Manager {
	return m.Discover(TypeTheme)
}

// DiscoverProfiles resets the manager and discovers install profiles.
func (m *Manager) DiscoverProfiles() *Manager {
	return m.Discover(TypeProfile)
}

// Discover resets the filter and the cached lists of every type, makes t
// the current type and discovers it.
func (m *Manager) Discover(t Type) *Manager {
	m.initialize()
	m.current = t
	m.err = m.discover(t)
	return m
}

// discover fills the cache for t. Module scans are preceded by a module
// data rebuild so status and origin are current. Discoverer errors are
// returned as is.
func (m *Manager) discover(t Type) error {
	if t == TypeModule {
		if err := m.discoverer.RebuildModuleData(); err != nil {
			return err
		}
	}

	records, err := m.discoverer.Scan(t)
	if err != nil {
		return err
	}
	m.cache[t] = records
	slog.Debug("discovered extensions", "type", string(t), "count", len(records))
	return nil
}

// Names returns the names of the visible extensions of the current type,
// in discovery order. It never triggers discovery.
func (m *Manager) Names() ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}

	names := []string{}
	for _, r := range m.cache[m.current] {
		if m.filter.Allows(r) {
			names = append(names, r.Name)
		}
	}
	return names, nil
}

// Extensions returns the visible extensions of the current type keyed by
// name, in discovery order. It never triggers discovery.
func (m *Manager) Extensions() (*orderedmap.OrderedMap[string, *Extension], error) {
	if m.err != nil {
		return nil, m.err
	}

	exts := orderedmap.New[string, *Extension]()
	for _, r := range m.cache[m.current] {
		if m.filter.Allows(r) {
			exts.Set(r.Name, newExtension(m.appRoot, r))
		}
	}
	return exts, nil
}

// List returns Names when nameOnly is set and Extensions otherwise.
func (m *Manager) List(nameOnly bool) (any, error) {
	if nameOnly {
		return m.Names()
	}
	return m.Extensions()
}

// FindModule looks up a module by name, discovering modules first if none
// are cached. Unlike DiscoverModules it leaves the filter and the current
// type alone. It returns nil, nil when no module has that name.
func (m *Manager) FindModule(name string) (*Extension, error) {
	if len(m.cache[TypeModule]) == 0 {
		if err := m.discover(TypeModule); err != nil {
			return nil, err
		}
		if m.current == TypeModule {
			m.err = nil
		}
	}

	for _, r := range m.cache[TypeModule] {
		if r.Name == name {
			return newExtension(m.appRoot, r), nil
		}
	}
	return nil, nil
}
