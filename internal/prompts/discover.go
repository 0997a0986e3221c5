package prompts

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// PromptExt is the extension of prompt files
	PromptExt = ".md"
	// ReadmeFile is never treated as a prompt
	ReadmeFile = "README.md"
)

// Discover lists prompt files directly under dir, skipping README.md and directories
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if name == ReadmeFile {
			continue
		}
		if ok, _ := filepath.Match("*"+PromptExt, name); !ok {
			continue
		}

		path := filepath.Join(dir, name)
		if isDir(entry, path) {
			continue
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func isDir(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
