package prompts

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/sha1n/prompts-mcp-server/internal/resources"
)

// ErrNoRegistrar is returned when a registry is created without an MCP server
var ErrNoRegistrar = errors.New("prompt registrar is required")

// Registrar is the part of *server.MCPServer the registry drives
type Registrar interface {
	AddPrompt(prompt mcp.Prompt, handler server.PromptHandlerFunc)
	DeletePrompts(names ...string)
	AddResource(resource mcp.Resource, handler server.ResourceHandlerFunc)
	RemoveResource(uri string)
}

// Indexer receives every registered prompt for search
type Indexer interface {
	Index(doc domain.Document) error
	Delete(id string) error
}

// FileError records a prompt file that failed to load
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Summary reports the outcome of one load pass
type Summary struct {
	Registered int
	Failed     []FileError
}

// Registry loads prompt files from a directory and registers them with the MCP server
type Registry struct {
	dir       string
	registrar Registrar
	loader    *Loader
	index     Indexer
	scheme    string

	mu     sync.Mutex
	active map[string]struct{} // names registered by the last pass
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLoader sets the loader used for prompt files
func WithLoader(l *Loader) RegistryOption {
	return func(r *Registry) {
		r.loader = l
	}
}

// WithIndexer indexes registered prompts for search
func WithIndexer(idx Indexer) RegistryOption {
	return func(r *Registry) {
		r.index = idx
	}
}

// WithScheme sets the URI scheme of prompt resources
func WithScheme(scheme string) RegistryOption {
	return func(r *Registry) {
		r.scheme = scheme
	}
}

// NewRegistry creates a registry for dir
func NewRegistry(dir string, registrar Registrar, opts ...RegistryOption) (*Registry, error) {
	if registrar == nil {
		return nil, ErrNoRegistrar
	}

	r := &Registry{
		dir:       dir,
		registrar: registrar,
		loader:    NewLoader(),
		scheme:    resources.DefaultScheme,
		active:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir returns the directory the registry loads from
func (r *Registry) Dir() string {
	return r.dir
}

// LoadAll registers every prompt file in the directory. Files that fail to
// load are logged and skipped. Prompts registered by a previous pass whose
// files are gone are removed. Safe to call repeatedly.
func (r *Registry) LoadAll(ctx context.Context) Summary {
	if r.dir == "" {
		slog.Error("Prompts directory is not set, skipping prompt loading")
		return Summary{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	paths, err := Discover(r.dir)
	if err != nil {
		slog.Error("Error listing prompt files", "dir", r.dir, "error", err)
		return Summary{}
	}

	var summary Summary
	records := make([]PromptRecord, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			slog.Warn("Prompt loading interrupted", "dir", r.dir, "error", err)
			return summary
		}

		record, err := r.loader.Load(path)
		if err != nil {
			slog.Error("Error loading prompt file", "file", path, "error", err)
			summary.Failed = append(summary.Failed, FileError{Path: path, Err: err})
			continue
		}
		records = append(records, record)
	}

	definitions := make([]resources.Definition, len(records))
	for i, record := range records {
		definitions[i] = resourceDefinition(record, r.scheme)
	}
	transform := resources.NewCrossRefTransformer(definitions, r.scheme)

	current := make(map[string]struct{}, len(records))
	for i, record := range records {
		r.register(record, definitions[i], transform)
		current[record.Name] = struct{}{}
	}

	r.removeStale(current)
	r.active = current

	summary.Registered = len(records)
	slog.Info("Loaded prompts", "count", summary.Registered, "failed", len(summary.Failed), "dir", r.dir)

	return summary
}

func (r *Registry) register(record PromptRecord, def resources.Definition, transform resources.ContentTransformer) {
	prompt := mcp.NewPrompt(record.Name,
		mcp.WithPromptDescription(record.Description),
		mcp.WithArgument(InputArgument,
			mcp.ArgumentDescription("Optional text appended after the prompt"),
		),
	)
	r.registrar.AddPrompt(prompt, NewPromptHandler(record))

	def.Content = transform(def.Content, def)
	r.registrar.AddResource(def.Resource(), resources.NewHandler(def))

	if r.index != nil {
		doc := domain.Document{
			ID:          record.Name,
			Name:        record.Name,
			Title:       record.Title,
			Description: record.Description,
			Content:     record.Content,
			URI:         def.URI,
		}
		if err := r.index.Index(doc); err != nil {
			slog.Warn("Failed to index prompt", "name", record.Name, "error", err)
		}
	}

	slog.Debug("Registered prompt", "name", record.Name, "title", record.Title, "uri", def.URI)
}

func (r *Registry) removeStale(current map[string]struct{}) {
	var stale []string
	for name := range r.active {
		if _, ok := current[name]; !ok {
			stale = append(stale, name)
		}
	}
	if len(stale) == 0 {
		return
	}
	sort.Strings(stale)

	r.registrar.DeletePrompts(stale...)
	for _, name := range stale {
		r.registrar.RemoveResource(resources.URIFor(r.scheme, name))
		if r.index != nil {
			if err := r.index.Delete(name); err != nil {
				slog.Warn("Failed to remove prompt from index", "name", name, "error", err)
			}
		}
	}

	slog.Info("Removed prompts", "names", stale)
}

// NewPromptHandler creates the MCP handler for one prompt. The record is
// captured by value, so every handler serves its own content.
func NewPromptHandler(record PromptRecord) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		text := record.Render(request.Params.Arguments)
		return mcp.NewGetPromptResult(record.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}

func resourceDefinition(record PromptRecord, scheme string) resources.Definition {
	return resources.Definition{
		URI:         resources.URIFor(scheme, record.Name),
		Name:        record.Name,
		Title:       record.Title,
		Description: record.Description,
		MIMEType:    resources.MIMETypeMarkdown,
		FilePath:    record.Path,
		Content:     record.Content,
	}
}
