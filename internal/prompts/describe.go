package prompts

import (
	"strings"
	"unicode/utf8"
)

const (
	identityMarker   = "# IDENTITY AND PURPOSE"
	maxFallbackRunes = 100
	fallbackEllipsis = "..."
)

// describe derives a prompt description. The IDENTITY AND PURPOSE section
// wins; otherwise the first non-heading line is truncated; otherwise "".
func describe(content string) string {
	lines := strings.Split(content, "\n")

	if section := identitySection(lines); section != "" {
		return section
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return truncateRunes(trimmed, maxFallbackRunes) + fallbackEllipsis
	}

	return ""
}

// identitySection joins the non-empty lines that follow the marker, up to the next heading
func identitySection(lines []string) string {
	var parts []string
	inSection := false

loop:
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(trimmed), identityMarker):
			inSection = true
		case !inSection:
		case strings.HasPrefix(trimmed, "#"):
			break loop
		case trimmed != "":
			parts = append(parts, trimmed)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
