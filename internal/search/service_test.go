package search

import (
	"path/filepath"
	"testing"

	"github.com/sha1n/prompts-mcp-server/internal/config"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(config.SearchSettings{MaxResults: 5})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	docs := []domain.Document{
		{
			ID: "summarize", Name: "summarize", Title: "Summarize",
			Description: "Condense long articles into key points",
			Content:     "# IDENTITY AND PURPOSE\nCondense long articles into key points",
			URI:         "prompts://summarize",
		},
		{
			ID: "code_review", Name: "code_review", Title: "Code Review",
			Description: "Review source code for bugs",
			Content:     "You review golang source code and report bugs.",
			URI:         "prompts://code_review",
		},
	}
	for _, d := range docs {
		require.NoError(t, s.Index(d))
	}
	return s
}

func TestService_Search(t *testing.T) {
	s := newTestService(t)

	results, err := s.Search("articles", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "summarize", results[0].Name)
	assert.Equal(t, "Summarize", results[0].Title)
	assert.Equal(t, "prompts://summarize", results[0].URI)
	assert.Greater(t, results[0].Score, 0.0)
	assert.Empty(t, results[0].Content)

	results, err = s.Search("golang", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "code_review", results[0].Name)
}

func TestService_SearchNoMatch(t *testing.T) {
	s := newTestService(t)

	results, err := s.Search("kubernetes", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_SearchLimit(t *testing.T) {
	s := newTestService(t)

	results, err := s.Search("review articles", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestService_Get(t *testing.T) {
	s := newTestService(t)

	r, err := s.Get("code_review")
	require.NoError(t, err)
	assert.Equal(t, "code_review", r.Name)
	assert.Equal(t, "You review golang source code and report bugs.", r.Content)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Delete("summarize"))

	_, err := s.Get("summarize")
	assert.ErrorIs(t, err, ErrNotFound)

	results, err := s.Search("articles", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_IndexReplaces(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Index(domain.Document{ID: "summarize", Name: "summarize", Content: "replaced"}))

	r, err := s.Get("summarize")
	require.NoError(t, err)
	assert.Equal(t, "replaced", r.Content)
}

func TestNewService_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	s, err := NewService(config.SearchSettings{IndexPath: path, MaxResults: 3})
	require.NoError(t, err)

	require.NoError(t, s.Index(domain.Document{ID: "a", Name: "a", Description: "alpha prompt"}))
	results, err := s.Search("alpha", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	s.Close()

	// Reopening rebuilds from scratch
	s, err = NewService(config.SearchSettings{IndexPath: path, MaxResults: 3})
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}
