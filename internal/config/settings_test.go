package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(PromptsDirEnv, dir)

	settings, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, dir, settings.PromptsDir)
	assert.Equal(t, TransportStdio, settings.Transport)
	assert.Equal(t, "localhost", settings.Host)
	assert.Equal(t, 8080, settings.Port)
	assert.Equal(t, "prompts", settings.Scheme)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, 10, settings.Search.MaxResults)
	assert.True(t, settings.Search.InMemory())
	assert.Equal(t, "none", settings.Auth.Type)
	assert.False(t, settings.Watch)
	assert.False(t, settings.TLSEnabled())
}

func TestLoad_PromptsDirUnset(t *testing.T) {
	t.Setenv(PromptsDirEnv, "")

	_, err := Load(NewViper())
	require.ErrorIs(t, err, ErrPromptsDirRequired)
}

func TestLoad_PromptsDirCheckedFirst(t *testing.T) {
	// An invalid transport would also fail, but the directory error wins
	t.Setenv(PromptsDirEnv, "")
	t.Setenv("PROMPTS_MCP_TRANSPORT", "carrier-pigeon")

	_, err := Load(NewViper())
	require.ErrorIs(t, err, ErrPromptsDirRequired)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(PromptsDirEnv, t.TempDir())
	t.Setenv("PROMPTS_MCP_TRANSPORT", "SSE")
	t.Setenv("PROMPTS_MCP_PORT", "9090")
	t.Setenv("PROMPTS_MCP_WATCH", "true")
	t.Setenv("PROMPTS_MCP_SEARCH_MAX_RESULTS", "3")
	t.Setenv("PROMPTS_MCP_FALLBACK_ENCODING", "windows-1252")
	t.Setenv("PROMPTS_MCP_AUTH_TYPE", "apikey")
	t.Setenv("PROMPTS_MCP_AUTH_API_KEY", "secret")

	settings, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, settings.Transport)
	assert.Equal(t, 9090, settings.Port)
	assert.True(t, settings.Watch)
	assert.Equal(t, 3, settings.Search.MaxResults)
	assert.Equal(t, "apikey", settings.Auth.Type)
	assert.Equal(t, "secret", settings.Auth.APIKey)

	enc, err := settings.Fallback()
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestSettings_Validate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Transport: TransportStdio,
			Scheme:    "prompts",
			Search:    SearchSettings{MaxResults: 10},
			Auth:      AuthSettings{Type: "none"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr string
	}{
		{name: "Valid", mutate: func(s *Settings) {}},
		{name: "Unknown transport", mutate: func(s *Settings) { s.Transport = "grpc" }, wantErr: "unknown transport"},
		{name: "SSE bad port", mutate: func(s *Settings) { s.Transport = TransportSSE; s.Port = 70000 }, wantErr: "invalid port"},
		{name: "SSE cert without key", mutate: func(s *Settings) { s.Transport = TransportSSE; s.CertFile = "c.pem" }, wantErr: "required for TLS"},
		{name: "Empty scheme", mutate: func(s *Settings) { s.Scheme = "" }, wantErr: "must not be empty"},
		{name: "Bad encoding", mutate: func(s *Settings) { s.FallbackEncoding = "klingon-8" }, wantErr: "unsupported fallback encoding"},
		{name: "Zero max results", mutate: func(s *Settings) { s.Search.MaxResults = 0 }, wantErr: "must be positive"},
		{name: "Basic without password", mutate: func(s *Settings) { s.Auth = AuthSettings{Type: "basic", Basic: BasicAuthSettings{Username: "u"}} }, wantErr: "username and password"},
		{name: "API key missing", mutate: func(s *Settings) { s.Auth = AuthSettings{Type: "apikey"} }, wantErr: "requires an API key"},
		{name: "OIDC missing client", mutate: func(s *Settings) { s.Auth = AuthSettings{Type: "oidc", OIDC: OIDCSettings{IssuerURL: "https://x"}} }, wantErr: "issuer URL and client ID"},
		{name: "Unknown auth", mutate: func(s *Settings) { s.Auth = AuthSettings{Type: "kerberos"} }, wantErr: "unknown auth type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_FallbackUnset(t *testing.T) {
	s := Settings{}
	enc, err := s.Fallback()
	require.NoError(t, err)
	assert.Nil(t, enc)
}
