package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/extctl/extctl/internal/extension"
	"github.com/extctl/extctl/internal/manifest"
)

// Origins reported for non-core extensions.
const (
	OriginContrib = "contrib"
	OriginCustom  = "custom"
)

// DefaultConfigDir is the config export directory, relative to the app root.
var DefaultConfigDir = filepath.Join("..", "config", "sync")

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"tests":        true,
}

// searchRoot is a directory scanned for manifests.
type searchRoot struct {
	dir  string // relative to the app root
	core bool
}

// Scanner discovers extensions beneath an app root. It implements
// extension.Discoverer.
type Scanner struct {
	root         string
	configDir    string
	includeTests bool
	logger       *slog.Logger

	state *manifest.State
	infos map[string]*manifest.Info // manifest path -> parsed manifest
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConfigDir sets the directory holding core.extension.yml. Relative
// paths are resolved against the app root.
func WithConfigDir(dir string) Option {
	return func(s *Scanner) {
		if dir != "" {
			s.configDir = dir
		}
	}
}

// WithIncludeTests makes the scanner report test-only extensions.
func WithIncludeTests(include bool) Option {
	return func(s *Scanner) { s.includeTests = include }
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New returns a Scanner for the site at root.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:      root,
		configDir: DefaultConfigDir,
		logger:    slog.Default(),
		infos:     make(map[string]*manifest.Info),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StatePath returns the location of core.extension.yml.
func (s *Scanner) StatePath() string {
	dir := s.configDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.root, dir)
	}
	return filepath.Join(dir, manifest.StateFile)
}

// RebuildModuleData re-reads the install state and forgets every parsed
// manifest, so the next Scan reflects what is on disk now.
func (s *Scanner) RebuildModuleData() error {
	state, err := manifest.ParseState(s.StatePath())
	if err != nil {
		return fmt.Errorf("loading install state: %w", err)
	}
	s.state = state
	s.infos = make(map[string]*manifest.Info)
	s.logger.Debug("rebuilt module data", "state", s.StatePath(), "installed_modules", len(state.Module))
	return nil
}

// Scan returns every extension of type t. When two manifests share a
// machine name, the one under the more specific search root replaces the
// other but keeps its position; within a single root the first one wins.
func (s *Scanner) Scan(t extension.Type) ([]extension.Record, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("reading app root: %w", err)
	}
	if s.state == nil {
		if err := s.RebuildModuleData(); err != nil {
			return nil, err
		}
	}

	type slot struct {
		index int // position in result
		root  int // search root the record came from
	}
	slots := make(map[string]slot)
	var result []extension.Record

	for i, sr := range s.searchRoots() {
		records, err := s.walkRoot(sr, t)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			prev, ok := slots[r.Name]
			switch {
			case !ok:
				slots[r.Name] = slot{index: len(result), root: i}
				result = append(result, r)
			case prev.root < i:
				s.logger.Debug("overriding extension", "name", r.Name, "path", r.Pathname, "replaces", result[prev.index].Pathname)
				result[prev.index] = r
				slots[r.Name] = slot{index: prev.index, root: i}
			default:
				s.logger.Debug("skipping duplicate extension", "name", r.Name, "path", r.Pathname)
			}
		}
	}

	return result, nil
}

// searchRoots lists the directories to scan, least specific first.
func (s *Scanner) searchRoots() []searchRoot {
	roots := []searchRoot{
		{dir: "core", core: true},
		{dir: "profiles"},
		{dir: "modules"},
		{dir: "themes"},
		{dir: filepath.Join("sites", "all")},
	}

	entries, err := os.ReadDir(filepath.Join(s.root, "sites"))
	if err != nil {
		return roots
	}
	var sites []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "all" && !strings.HasPrefix(e.Name(), ".") {
			sites = append(sites, e.Name())
		}
	}
	sort.Strings(sites)
	for _, site := range sites {
		roots = append(roots, searchRoot{dir: filepath.Join("sites", site)})
	}
	return roots
}

// walkRoot collects the extensions of type t beneath one search root.
func (s *Scanner) walkRoot(sr searchRoot, t extension.Type) ([]extension.Record, error) {
	base := filepath.Join(s.root, sr.dir)
	if _, err := os.Stat(base); err != nil {
		return nil, nil
	}
	s.logger.Debug("scanning", "dir", base, "type", string(t))

	var result []extension.Record
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != base && s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !manifest.IsInfoFile(d.Name()) {
			return nil
		}

		info, err := s.parse(path)
		if err != nil {
			s.logger.Debug("skipping unparseable manifest", "path", path, "error", err)
			return nil
		}
		if info.Type != string(t) {
			return nil
		}
		if info.IsTesting() && !s.includeTests {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}

		result = append(result, s.record(t, rel, info, sr.core))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", base, err)
	}
	return result, nil
}

func (s *Scanner) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if name == "tests" && s.includeTests {
		return false
	}
	return skipDirs[name]
}

// parse returns the manifest at path, reusing earlier parses until the
// next RebuildModuleData.
func (s *Scanner) parse(path string) (*manifest.Info, error) {
	if info, ok := s.infos[path]; ok {
		return info, nil
	}
	info, err := manifest.ParseInfo(path)
	if err != nil {
		return nil, err
	}
	s.infos[path] = info
	return info, nil
}

func (s *Scanner) record(t extension.Type, rel string, info *manifest.Info, core bool) extension.Record {
	name := manifest.MachineName(rel)
	return extension.Record{
		Name:      name,
		Type:      t,
		Origin:    originOf(rel, core),
		Installed: s.state.IsInstalled(string(t), name),
		Weight:    s.state.Weight(string(t), name),
		Pathname:  rel,
		Filename:  s.mainFile(rel, name, t),
		Info:      info,
	}
}

// mainFile returns "<name>.<type>" when that file sits beside the manifest.
func (s *Scanner) mainFile(rel, name string, t extension.Type) string {
	filename := name + "." + string(t)
	if _, err := os.Stat(filepath.Join(s.root, filepath.Dir(rel), filename)); err != nil {
		return ""
	}
	return filename
}

// originOf classifies a manifest by location.
func originOf(rel string, core bool) string {
	if core {
		return extension.OriginCore
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == "custom" {
			return OriginCustom
		}
	}
	return OriginContrib
}
