package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
	return path
}

func TestFilesFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	rst := touch(t, dir, "guide.rst")
	touch(t, dir, "notes.txt")
	touch(t, dir, "README.md")

	got, err := Files([]string{dir}, []string{".rst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{rst}, got)
}

func TestFilesSortedAcrossSubdirectories(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, dir, filepath.Join("zdir", "b.rst"))
	a := touch(t, dir, "a.rst")
	m := touch(t, dir, filepath.Join("mid", "m.rst"))

	got, err := Files([]string{dir}, []string{".rst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, m, b}, got)
}

func TestFilesSkipsHiddenAndVendoredDirs(t *testing.T) {
	dir := t.TempDir()
	kept := touch(t, dir, "doc.rst")
	touch(t, dir, filepath.Join(".git", "hook.rst"))
	touch(t, dir, filepath.Join(".cache", "stale.rst"))
	touch(t, dir, filepath.Join("node_modules", "dep.rst"))
	touch(t, dir, filepath.Join("vendor", "pkg.rst"))

	got, err := Files([]string{dir}, []string{".rst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, got)
}

func TestFilesHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated/\n*.draft.rst\n"), 0644))
	kept := touch(t, dir, "doc.rst")
	touch(t, dir, filepath.Join("generated", "out.rst"))
	touch(t, dir, "wip.draft.rst")

	got, err := Files([]string{dir}, []string{".rst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, got)
}

func TestFilesSkipsConfiguredExcludes(t *testing.T) {
	dir := t.TempDir()
	kept := touch(t, dir, "doc.rst")
	touch(t, dir, filepath.Join("archive", "old.rst"))

	got, err := Files([]string{dir}, []string{".rst"}, []string{"archive"})
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, got)
}

func TestFilesDeduplicatesOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	doc := touch(t, dir, "doc.rst")

	got, err := Files([]string{dir, dir}, []string{".rst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{doc}, got)
}

func TestFilesMultipleExtensions(t *testing.T) {
	dir := t.TempDir()
	rst := touch(t, dir, "a.rst")
	md := touch(t, dir, "b.md")
	touch(t, dir, "c.txt")

	got, err := Files([]string{dir}, []string{".rst", ".md"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{rst, md}, got)
}
