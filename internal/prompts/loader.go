package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sha1n/prompts-mcp-server/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// Loader reads prompt files into PromptRecords
type Loader struct {
	fallback encoding.Encoding
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithFallbackEncoding sets the encoding tried when a file is not valid UTF-8
func WithFallbackEncoding(enc encoding.Encoding) LoaderOption {
	return func(l *Loader) {
		l.fallback = enc
	}
}

// NewLoader creates a prompt file loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLoaderFor creates a loader using the fallback encoding named in settings
func NewLoaderFor(settings *config.Settings) (*Loader, error) {
	fallback, err := settings.Fallback()
	if err != nil {
		return nil, fmt.Errorf("invalid fallback encoding: %w", err)
	}
	if fallback == nil {
		return NewLoader(), nil
	}
	return NewLoader(WithFallbackEncoding(fallback)), nil
}

// Load reads a prompt file. File access errors are returned as is; decoding never fails.
func (l *Loader) Load(path string) (PromptRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PromptRecord{}, err
	}

	text := l.decode(data)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return PromptRecord{
		Name:        name,
		Title:       titleFromName(name),
		Description: describe(text),
		Content:     text,
		Path:        path,
	}, nil
}

// decode tries UTF-8, then the fallback encoding, then UTF-8 with every
// invalid byte replaced by U+FFFD.
func (l *Loader) decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	if l.fallback != nil {
		decoded, err := l.fallback.NewDecoder().Bytes(data)
		if err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}

// titleFromName turns "code_review_2" into "Code Review 2"
func titleFromName(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}
