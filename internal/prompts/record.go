package prompts

import "fmt"

// InputArgument is the optional prompt argument appended to the prompt text
const InputArgument = "input"

// PromptRecord is a prompt file loaded from disk
type PromptRecord struct {
	Name        string // file base name without extension, unique per load pass
	Title       string
	Description string
	Content     string // raw file text, served verbatim
	Path        string
}

// Render returns the text served for a prompt request. A non-empty "input"
// argument is appended after a blank line.
func (r PromptRecord) Render(arguments map[string]string) string {
	if input := arguments[InputArgument]; input != "" {
		return r.Content + "\n\n" + input
	}
	return r.Content
}

// String implements fmt.Stringer for log lines
func (r PromptRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Path)
}
