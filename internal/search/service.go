// Package search indexes prompts with bleve for the search and read tools.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/sha1n/prompts-mcp-server/internal/config"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
)

// Indexed field names
const (
	FieldName        = "name"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldURI         = "uri"
)

// ErrNotFound is returned by Get for unknown prompts
var ErrNotFound = errors.New("prompt not found")

// SearchResult is one search hit
type SearchResult struct {
	Name        string
	Title       string
	Description string
	URI         string
	Content     string
	Score       float64
}

// Searcher is the search service API used by the MCP tools
type Searcher interface {
	Index(doc domain.Document) error
	Delete(id string) error
	Search(query string, limit int) ([]SearchResult, error)
	Get(id string) (SearchResult, error)
	Close()
}

// Service is a bleve-backed Searcher
type Service struct {
	index      bleve.Index
	maxResults int
}

// NewService opens a fresh index, in memory unless an index path is configured
func NewService(settings config.SearchSettings) (*Service, error) {
	mapping := bleve.NewIndexMapping()

	var (
		index bleve.Index
		err   error
	)
	if settings.InMemory() {
		index, err = bleve.NewMemOnly(mapping)
	} else {
		// The index is rebuilt on every start
		if err := os.RemoveAll(settings.IndexPath); err != nil {
			return nil, fmt.Errorf("failed to clear search index: %w", err)
		}
		index, err = bleve.New(settings.IndexPath, mapping)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	maxResults := settings.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	return &Service{index: index, maxResults: maxResults}, nil
}

// Index adds or replaces a document
func (s *Service) Index(doc domain.Document) error {
	return s.index.Index(doc.ID, map[string]interface{}{
		FieldName:        doc.Name,
		FieldTitle:       doc.Title,
		FieldDescription: doc.Description,
		FieldContent:     doc.Content,
		FieldURI:         doc.URI,
	})
}

// Delete removes a document. Unknown IDs are ignored.
func (s *Service) Delete(id string) error {
	return s.index.Delete(id)
}

// Search runs a match query over all fields. limit <= 0 uses the configured maximum.
func (s *Service) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	req.Fields = []string{FieldName, FieldTitle, FieldDescription, FieldURI}

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := resultFromFields(hit.Fields)
		r.Score = hit.Score
		results = append(results, r)
	}

	slog.Debug("Search completed", "query", query, "hits", len(results), "total", res.Total)
	return results, nil
}

// Get returns a stored document by ID, including its content
func (s *Service) Get(id string) (SearchResult, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{FieldName, FieldTitle, FieldDescription, FieldURI, FieldContent}

	res, err := s.index.Search(req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("lookup failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return SearchResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return resultFromFields(res.Hits[0].Fields), nil
}

// Close releases the index
func (s *Service) Close() {
	if err := s.index.Close(); err != nil {
		slog.Error("Error closing search index", "error", err)
	}
}

func resultFromFields(fields map[string]interface{}) SearchResult {
	str := func(key string) string {
		v, _ := fields[key].(string)
		return v
	}
	return SearchResult{
		Name:        str(FieldName),
		Title:       str(FieldTitle),
		Description: str(FieldDescription),
		URI:         str(FieldURI),
		Content:     str(FieldContent),
	}
}
