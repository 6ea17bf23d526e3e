package extension

import (
	"path/filepath"

	"github.com/extctl/extctl/internal/manifest"
)

// Well-known directories inside an extension.
const (
	configInstallDir  = "config/install"
	configOptionalDir = "config/optional"
	sourceDir         = "src"
	testsDir          = "tests"
)

// Extension wraps a Record with path helpers resolved against the app root.
type Extension struct {
	appRoot string
	record  Record
}

func newExtension(appRoot string, r Record) *Extension {
	return &Extension{appRoot: appRoot, record: r}
}

func (e *Extension) Name() string { return e.record.Name }
func (e *Extension) Type() Type { return e.record.Type }
func (e *Extension) Origin() string { return e.record.Origin }
func (e *Extension) Installed() bool { return e.record.Installed }
func (e *Extension) Weight() int { return e.record.Weight }
func (e *Extension) Pathname() string { return e.record.Pathname }
func (e *Extension) Filename() string { return e.record.Filename }
func (e *Extension) Info() *manifest.Info { return e.record.Info }

// Label returns the human-readable name from the manifest, falling back to
// the machine name.
func (e *Extension) Label() string {
	if e.record.Info != nil && e.record.Info.Name != "" {
		return e.record.Info.Name
	}
	return e.record.Name
}

// Path returns the extension directory, relative to the app root unless
// full is set.
func (e *Extension) Path(full bool) string {
	dir := filepath.Dir(e.record.Pathname)
	if full {
		return filepath.Join(e.appRoot, dir)
	}
	return dir
}

// ConfigInstallDir returns the directory holding default configuration.
func (e *Extension) ConfigInstallDir(full bool) string {
	return filepath.Join(e.Path(full), configInstallDir)
}

// ConfigOptionalDir returns the directory holding optional configuration.
func (e *Extension) ConfigOptionalDir(full bool) string {
	return filepath.Join(e.Path(full), configOptionalDir)
}

// SourceDir returns the PSR-4 source directory.
func (e *Extension) SourceDir(full bool) string {
	return filepath.Join(e.Path(full), sourceDir)
}

// TestsDir returns the directory holding the extension's tests.
func (e *Extension) TestsDir(full bool) string {
	return filepath.Join(e.Path(full), testsDir)
}
