package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "a.md", "a")
	writePrompt(t, dir, "b.md", "b")
	writePrompt(t, dir, "README.md", "ignore me")
	writePrompt(t, dir, "readme.md", "case matters")
	writePrompt(t, dir, "notes.txt", "not a prompt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writePrompt(t, filepath.Join(dir, "nested"), "deep.md", "not scanned")

	paths, err := Discover(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
		assert.Equal(t, dir, filepath.Dir(p))
	}
	assert.ElementsMatch(t, []string{"a.md", "b.md", "readme.md"}, names)
}

func TestDiscover_SymlinkToDirectorySkipped(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()
	writePrompt(t, dir, "real.md", "x")
	if err := os.Symlink(target, filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	paths, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "real.md", filepath.Base(paths[0]))
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
