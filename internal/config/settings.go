package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EnvPrefix prefixes every setting's environment variable except PROMPTS_DIR
const EnvPrefix = "PROMPTS_MCP"

// Setting keys, shared by viper, environment variables and CLI flags
const (
	KeyPromptsDir        = "prompts-dir"
	KeyTransport         = "transport"
	KeyHost              = "host"
	KeyPort              = "port"
	KeyCertFile          = "cert-file"
	KeyKeyFile           = "key-file"
	KeyScheme            = "scheme"
	KeyMetadata          = "metadata"
	KeyFallbackEncoding  = "fallback-encoding"
	KeyWatch             = "watch"
	KeyLogLevel          = "log-level"
	KeySearchMaxResults  = "search-max-results"
	KeySearchIndexPath   = "search-index-path"
	KeyAuthType          = "auth-type"
	KeyAuthBasicUsername = "auth-basic-username"
	KeyAuthBasicPassword = "auth-basic-password"
	KeyAuthAPIKey        = "auth-api-key"
	KeyAuthOIDCIssuer    = "auth-oidc-issuer"
	KeyAuthOIDCClientID  = "auth-oidc-client-id"
)

// Transport types
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Settings holds the resolved server configuration
type Settings struct {
	PromptsDir       string
	Transport        string
	Host             string
	Port             int
	CertFile         string
	KeyFile          string
	Scheme           string
	MetadataPath     string
	FallbackEncoding string
	Watch            bool
	LogLevel         string
	Search           SearchSettings
	Auth             AuthSettings
}

// SearchSettings configures the prompt search index
type SearchSettings struct {
	// IndexPath is the on-disk index location. Empty keeps the index in memory.
	IndexPath  string
	MaxResults int
}

// InMemory reports whether the index lives in memory only
func (s SearchSettings) InMemory() bool {
	return s.IndexPath == ""
}

// AuthSettings configures authentication for the HTTP transport
type AuthSettings struct {
	Type   string // none, basic, apikey, oidc
	Basic  BasicAuthSettings
	APIKey string
	OIDC   OIDCSettings
}

// BasicAuthSettings holds HTTP basic credentials
type BasicAuthSettings struct {
	Username string
	Password string
}

// OIDCSettings holds OpenID Connect verification parameters
type OIDCSettings struct {
	IssuerURL string
	ClientID  string
}

// TLSEnabled reports whether both a certificate and a key are configured
func (s *Settings) TLSEnabled() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// Fallback returns the configured fallback text encoding, or nil when none is set
func (s *Settings) Fallback() (encoding.Encoding, error) {
	if s.FallbackEncoding == "" {
		return nil, nil
	}
	return htmlindex.Get(s.FallbackEncoding)
}

// NewViper creates a viper instance with defaults and environment bindings
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// PROMPTS_DIR is unprefixed
	_ = v.BindEnv(KeyPromptsDir, PromptsDirEnv)

	v.SetDefault(KeyTransport, TransportStdio)
	v.SetDefault(KeyHost, "localhost")
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyScheme, "prompts")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySearchMaxResults, 10)
	v.SetDefault(KeyAuthType, "none")

	return v
}

// Load reads and validates settings. The prompts directory is resolved
// before anything else so a missing directory fails fast.
func Load(v *viper.Viper) (*Settings, error) {
	promptsDir, err := ResolvePromptsDir(v.GetString(KeyPromptsDir))
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		PromptsDir:       promptsDir,
		Transport:        strings.ToLower(v.GetString(KeyTransport)),
		Host:             v.GetString(KeyHost),
		Port:             v.GetInt(KeyPort),
		CertFile:         v.GetString(KeyCertFile),
		KeyFile:          v.GetString(KeyKeyFile),
		Scheme:           v.GetString(KeyScheme),
		MetadataPath:     v.GetString(KeyMetadata),
		FallbackEncoding: v.GetString(KeyFallbackEncoding),
		Watch:            v.GetBool(KeyWatch),
		LogLevel:         v.GetString(KeyLogLevel),
		Search: SearchSettings{
			IndexPath:  v.GetString(KeySearchIndexPath),
			MaxResults: v.GetInt(KeySearchMaxResults),
		},
		Auth: AuthSettings{
			Type: strings.ToLower(v.GetString(KeyAuthType)),
			Basic: BasicAuthSettings{
				Username: v.GetString(KeyAuthBasicUsername),
				Password: v.GetString(KeyAuthBasicPassword),
			},
			APIKey: v.GetString(KeyAuthAPIKey),
			OIDC: OIDCSettings{
				IssuerURL: v.GetString(KeyAuthOIDCIssuer),
				ClientID:  v.GetString(KeyAuthOIDCClientID),
			},
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks settings that do not depend on the filesystem
func (s *Settings) Validate() error {
	switch s.Transport {
	case TransportStdio:
	case TransportSSE:
		if s.Port < 0 || s.Port > 65535 {
			return fmt.Errorf("invalid port: %d", s.Port)
		}
		if (s.CertFile == "") != (s.KeyFile == "") {
			return fmt.Errorf("both %s and %s are required for TLS", KeyCertFile, KeyKeyFile)
		}
	default:
		return fmt.Errorf("unknown transport: %s", s.Transport)
	}

	if s.Scheme == "" {
		return fmt.Errorf("%s must not be empty", KeyScheme)
	}

	if s.FallbackEncoding != "" {
		if _, err := htmlindex.Get(s.FallbackEncoding); err != nil {
			return fmt.Errorf("unsupported fallback encoding %q: %w", s.FallbackEncoding, err)
		}
	}

	if s.Search.MaxResults <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeySearchMaxResults, s.Search.MaxResults)
	}

	return s.Auth.Validate()
}

// Validate checks that the selected auth type has what it needs
func (a AuthSettings) Validate() error {
	switch a.Type {
	case "", "none":
		return nil
	case "basic":
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return fmt.Errorf("basic auth requires username and password")
		}
	case "apikey":
		if a.APIKey == "" {
			return fmt.Errorf("apikey auth requires an API key")
		}
	case "oidc":
		if a.OIDC.IssuerURL == "" || a.OIDC.ClientID == "" {
			return fmt.Errorf("oidc auth requires issuer URL and client ID")
		}
	default:
		return fmt.Errorf("unknown auth type: %s", a.Type)
	}
	return nil
}
