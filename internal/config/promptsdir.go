package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// PromptsDirEnv is the environment variable naming the prompts directory
const PromptsDirEnv = "PROMPTS_DIR"

var (
	// ErrPromptsDirRequired is returned when no prompts directory is configured
	ErrPromptsDirRequired = errors.New(PromptsDirEnv + " environment variable is required")
	// ErrPromptsDirNotExist is returned when the configured directory is missing
	ErrPromptsDirNotExist = errors.New("prompts directory does not exist")
	// ErrPromptsDirNotDir is returned when the configured path is a regular file
	ErrPromptsDirNotDir = errors.New("prompts path is not a directory")
)

// ResolvePromptsDir expands and validates the configured prompts directory.
// The returned path is absolute and clean.
func ResolvePromptsDir(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrPromptsDirRequired
	}

	expanded, err := expandHome(raw)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve prompts directory %q: %w", raw, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPromptsDirNotExist, abs)
		}
		return "", fmt.Errorf("failed to stat prompts directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrPromptsDirNotDir, abs)
	}

	return abs, nil
}

// expandHome replaces a leading "~" with the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	if xdg.Home == "" {
		return "", fmt.Errorf("cannot expand %q: home directory is unknown", path)
	}
	return filepath.Join(xdg.Home, path[1:]), nil
}
