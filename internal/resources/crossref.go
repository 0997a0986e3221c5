package resources

import (
	"path/filepath"
	"regexp"
	"strings"
)

// linkRe matches markdown links and images: [text](target "title").
// Groups: 1 text, 2 target, 3 optional title including its leading space.
var linkRe = regexp.MustCompile(`!?\[([^\]]*)\]\(([^)\s]+)(\s+"[^"]*")?\)`)

// NewCrossRefTransformer rewrites relative links between prompt files into
// resource URIs. Images, fragments, absolute URLs and links to unknown
// files are left alone.
func NewCrossRefTransformer(definitions []Definition, scheme string) ContentTransformer {
	uris := make(map[string]string, len(definitions))
	for _, d := range definitions {
		uris[filepath.Clean(d.FilePath)] = d.URI
	}

	return func(content string, current Definition) string {
		if len(uris) == 0 || !strings.Contains(content, "](") {
			return content
		}
		baseDir := filepath.Dir(current.FilePath)

		return linkRe.ReplaceAllStringFunc(content, func(match string) string {
			if match[0] == '!' {
				return match
			}
			groups := linkRe.FindStringSubmatch(match)
			text, target, title := groups[1], groups[2], groups[3]

			if !isRelativeFileLink(target) {
				return match
			}

			path, fragment, _ := strings.Cut(target, "#")
			if fragment != "" {
				fragment = "#" + fragment
			}

			uri, ok := uris[filepath.Clean(filepath.Join(baseDir, path))]
			if !ok {
				return match
			}
			return "[" + text + "](" + uri + fragment + title + ")"
		})
	}
}

// isRelativeFileLink rejects fragment-only links and anything with a scheme (http:, mailto:, prompts:)
func isRelativeFileLink(target string) bool {
	return !strings.HasPrefix(target, "#") && !strings.Contains(target, ":")
}
