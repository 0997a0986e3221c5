package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePromptsDir_Empty(t *testing.T) {
	_, err := ResolvePromptsDir("")
	require.ErrorIs(t, err, ErrPromptsDirRequired)
	assert.Contains(t, err.Error(), "PROMPTS_DIR environment variable is required")

	_, err = ResolvePromptsDir("   ")
	require.ErrorIs(t, err, ErrPromptsDirRequired)
}

func TestResolvePromptsDir_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := ResolvePromptsDir(missing)
	require.ErrorIs(t, err, ErrPromptsDirNotExist)
	assert.Contains(t, err.Error(), "does not exist")
	assert.Contains(t, err.Error(), missing)
}

func TestResolvePromptsDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prompt.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := ResolvePromptsDir(file)
	require.ErrorIs(t, err, ErrPromptsDirNotDir)
}

func TestResolvePromptsDir_Relative(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "prompts"), 0755))
	t.Chdir(tempDir)

	got, err := ResolvePromptsDir("./prompts/../prompts")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "prompts", filepath.Base(got))
}

func TestResolvePromptsDir_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "my-prompts"), 0755))

	original := xdg.Home
	xdg.Home = home
	t.Cleanup(func() { xdg.Home = original })

	got, err := ResolvePromptsDir("~/my-prompts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "my-prompts"), got)

	got, err = ResolvePromptsDir("~")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(home), got)
}

func TestExpandHome_LeavesOtherPathsAlone(t *testing.T) {
	for _, p := range []string{"/abs/path", "rel/path", "~user/path"} {
		got, err := expandHome(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
