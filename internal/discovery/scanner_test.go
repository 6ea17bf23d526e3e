package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/extctl/extctl/internal/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates rel beneath root with the given content.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newSite lays out a small site: web/ is the app root and config/sync
// holds the exported install state.
func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	web := filepath.Join(dir, "web")

	writeFile(t, web, "core/modules/node/node.info.yml", "name: Node\ntype: module\npackage: Core\n")
	writeFile(t, web, "core/modules/node/node.module", "<?php\n")
	writeFile(t, web, "core/modules/forum/forum.info.yml", "name: Forum\ntype: module\npackage: Core\n")
	writeFile(t, web, "core/modules/system/tests/modules/entity_test/entity_test.info.yml", "name: Entity test\ntype: module\npackage: Testing\n")
	writeFile(t, web, "core/themes/olivero/olivero.info.yml", "name: Olivero\ntype: theme\nbase theme: false\n")
	writeFile(t, web, "core/profiles/standard/standard.info.yml", "name: Standard\ntype: profile\n")
	writeFile(t, web, "core/profiles/minimal/minimal.info.yml", "name: Minimal\ntype: profile\n")

	writeFile(t, web, "modules/contrib/token/token.info.yml", "name: Token\ntype: module\ncore_version_requirement: ^9 || ^10\n")
	writeFile(t, web, "modules/contrib/token/token.module", "<?php\n")
	writeFile(t, web, "modules/contrib/token/node_modules/junk/junk.info.yml", "name: Junk\ntype: module\n")
	writeFile(t, web, "modules/custom/acme/acme.info.yml", "name: Acme\ntype: module\n")
	writeFile(t, web, "modules/contrib/node/node.info.yml", "name: Node fork\ntype: module\n")
	writeFile(t, web, "modules/contrib/broken/broken.info.yml", "name: [broken\n")
	writeFile(t, web, "modules/.git/hidden/hidden.info.yml", "name: Hidden\ntype: module\n")
	writeFile(t, web, "themes/contrib/gin/gin.info.yml", "name: Gin\ntype: theme\nbase theme: claro\n")
	writeFile(t, web, "sites/default/modules/local/local.info.yml", "name: Local\ntype: module\n")

	writeFile(t, dir, "config/sync/core.extension.yml", `module:
  node: 0
  token: 5
  acme: 10
  standard: 1000
theme:
  olivero: 0
profile: standard
`)
	return web
}

func byName(records []extension.Record) map[string]extension.Record {
	m := make(map[string]extension.Record, len(records))
	for _, r := range records {
		m[r.Name] = r
	}
	return m
}

func names(records []extension.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestScanModules(t *testing.T) {
	web := newSite(t)
	s := New(web)
	require.NoError(t, s.RebuildModuleData())

	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)

	got := byName(records)
	assert.ElementsMatch(t, []string{"node", "forum", "token", "acme", "local"}, names(records))

	// The copy under modules/ overrides the core one.
	node := got["node"]
	assert.Equal(t, OriginContrib, node.Origin)
	assert.True(t, node.Installed)
	assert.Empty(t, node.Filename)
	assert.Equal(t, filepath.FromSlash("modules/contrib/node/node.info.yml"), node.Pathname)
	require.NotNil(t, node.Info)
	assert.Equal(t, "Node fork", node.Info.Name)

	forum := got["forum"]
	assert.False(t, forum.Installed)
	assert.Empty(t, forum.Filename)

	token := got["token"]
	assert.Equal(t, OriginContrib, token.Origin)
	assert.True(t, token.Installed)
	assert.Equal(t, 5, token.Weight)

	assert.Equal(t, OriginCustom, got["acme"].Origin)
	assert.Equal(t, OriginContrib, got["local"].Origin)
	assert.False(t, got["local"].Installed)
}

func TestScanOverrideKeepsPosition(t *testing.T) {
	s := New(newSite(t))

	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	require.Equal(t, []string{"forum", "node", "token", "acme", "local"}, names(records))
	assert.True(t, records[0].IsCore())
	assert.False(t, records[1].IsCore())
	assert.Equal(t, OriginContrib, records[1].Origin)
}

func TestScanSiteDirectoryWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core/modules/views/views.info.yml", "name: Views\ntype: module\n")
	writeFile(t, dir, "modules/contrib/views/views.info.yml", "name: Views contrib\ntype: module\n")
	writeFile(t, dir, "sites/all/modules/views/views.info.yml", "name: Views all\ntype: module\n")
	writeFile(t, dir, "sites/default/modules/views/views.info.yml", "name: Views patched\ntype: module\n")
	writeFile(t, dir, "sites/default/modules/views/views.module", "<?php\n")
	writeFile(t, dir, "core/modules/block/block.info.yml", "name: Block\ntype: module\n")

	s := New(dir)
	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	require.Equal(t, []string{"block", "views"}, names(records))

	views := records[1]
	assert.Equal(t, OriginContrib, views.Origin)
	assert.Equal(t, filepath.FromSlash("sites/default/modules/views/views.info.yml"), views.Pathname)
	assert.Equal(t, "views.module", views.Filename)
	require.NotNil(t, views.Info)
	assert.Equal(t, "Views patched", views.Info.Name)
}

func TestScanFirstWinsWithinRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "modules/contrib/pathauto/pathauto.info.yml", "name: Pathauto\ntype: module\n")
	writeFile(t, dir, "modules/custom/pathauto/pathauto.info.yml", "name: Pathauto custom\ntype: module\n")

	records, err := New(dir).Scan(extension.TypeModule)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OriginContrib, records[0].Origin)
}

func TestScanIncludeTests(t *testing.T) {
	s := New(newSite(t), WithIncludeTests(true))

	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	assert.Contains(t, names(records), "entity_test")
}

func TestScanThemesAndProfiles(t *testing.T) {
	s := New(newSite(t))

	themes, err := s.Scan(extension.TypeTheme)
	require.NoError(t, err)
	assert.Equal(t, []string{"olivero", "gin"}, names(themes))
	assert.True(t, byName(themes)["olivero"].Installed)
	assert.False(t, byName(themes)["gin"].Installed)
	assert.Equal(t, "claro", byName(themes)["gin"].Info.BaseTheme)

	profiles, err := s.Scan(extension.TypeProfile)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"standard", "minimal"}, names(profiles))
	assert.True(t, byName(profiles)["standard"].Installed)
	assert.False(t, byName(profiles)["minimal"].Installed)
}

func TestRebuildModuleDataPicksUpChanges(t *testing.T) {
	web := newSite(t)
	s := New(web)
	require.NoError(t, s.RebuildModuleData())

	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	require.False(t, byName(records)["forum"].Installed)

	writeFile(t, filepath.Dir(web), "config/sync/core.extension.yml", "module:\n  forum: 0\n")

	// Without a rebuild the old state is still in effect.
	records, err = s.Scan(extension.TypeModule)
	require.NoError(t, err)
	assert.False(t, byName(records)["forum"].Installed)

	require.NoError(t, s.RebuildModuleData())
	records, err = s.Scan(extension.TypeModule)
	require.NoError(t, err)
	assert.True(t, byName(records)["forum"].Installed)
	assert.False(t, byName(records)["node"].Installed)
}

func TestScanWithoutStateFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "modules/contrib/token/token.info.yml", "name: Token\ntype: module\n")

	s := New(dir)
	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Installed)
}

func TestScanCustomConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "modules/contrib/token/token.info.yml", "name: Token\ntype: module\n")
	writeFile(t, dir, "private/cfg/core.extension.yml", "module:\n  token: 0\n")

	s := New(dir, WithConfigDir(filepath.Join(dir, "private", "cfg")))
	records, err := s.Scan(extension.TypeModule)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Installed)
}

func TestScanMissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	_, err := s.Scan(extension.TypeModule)
	require.Error(t, err)
}

func TestRebuildModuleDataCorruptState(t *testing.T) {
	dir := t.TempDir()
	web := filepath.Join(dir, "web")
	require.NoError(t, os.MkdirAll(web, 0755))
	writeFile(t, dir, "config/sync/core.extension.yml", "module: [oops\n")

	s := New(web)
	err := s.RebuildModuleData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading install state")
}

func TestScannerDrivesManager(t *testing.T) {
	web := newSite(t)
	m := extension.New(web, New(web))

	names, err := m.DiscoverModules().ShowInstalled().ShowNoCore().Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"node", "token", "acme"}, names)

	ext, err := m.FindModule("forum")
	require.NoError(t, err)
	require.NotNil(t, ext)
	assert.Equal(t, filepath.Join(web, "core", "modules", "forum"), ext.Path(true))
}
