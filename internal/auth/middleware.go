// Package auth guards the HTTP (SSE) transport.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sha1n/prompts-mcp-server/internal/config"
)

// Middleware wraps an HTTP handler
type Middleware func(http.Handler) http.Handler

// authenticator reports whether a request may proceed. When it may not, the
// returned reason is sent back with 401.
type authenticator func(r *http.Request) (ok bool, reason string)

// NewMiddleware creates the middleware selected by settings.Type
func NewMiddleware(ctx context.Context, settings config.AuthSettings) (Middleware, error) {
	switch settings.Type {
	case "none", "":
		return func(next http.Handler) http.Handler { return next }, nil
	case "basic":
		return guard("basic", basicAuthenticator(settings.Basic), `Basic realm="prompts-mcp"`), nil
	case "apikey":
		return guard("apikey", apiKeyAuthenticator(settings.APIKey), ""), nil
	case "oidc":
		authn, err := oidcAuthenticator(ctx, settings.OIDC)
		if err != nil {
			return nil, err
		}
		return guard("oidc", authn, `Bearer realm="prompts-mcp"`), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", settings.Type)
	}
}

func guard(scheme string, authn authenticator, challenge string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, reason := authn(r); !ok {
				slog.Warn("Rejected request", "auth", scheme, "path", r.URL.Path, "remote", r.RemoteAddr, "reason", reason)
				if challenge != "" {
					w.Header().Set("WWW-Authenticate", challenge)
				}
				http.Error(w, "Unauthorized: "+reason, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func basicAuthenticator(settings config.BasicAuthSettings) authenticator {
	return func(r *http.Request) (bool, string) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			return false, "missing credentials"
		}
		if !secureEqual(user, settings.Username) || !secureEqual(pass, settings.Password) {
			return false, "invalid credentials"
		}
		return true, ""
	}
}

func apiKeyAuthenticator(apiKey string) authenticator {
	return func(r *http.Request) (bool, string) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			key = r.URL.Query().Get("api_key")
		}
		if key == "" {
			return false, "missing API key"
		}
		if !secureEqual(key, apiKey) {
			return false, "invalid API key"
		}
		return true, ""
	}
}

func oidcAuthenticator(ctx context.Context, settings config.OIDCSettings) (authenticator, error) {
	provider, err := oidc.NewProvider(ctx, settings.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: settings.ClientID})

	return func(r *http.Request) (bool, string) {
		token := bearerToken(r)
		if token == "" {
			return false, "missing token"
		}
		if _, err := verifier.Verify(r.Context(), token); err != nil {
			return false, "invalid token"
		}
		return true, ""
	}, nil
}

// bearerToken reads the Authorization header, falling back to the token query
// parameter for SSE clients that cannot set headers
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return r.URL.Query().Get("token")
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
