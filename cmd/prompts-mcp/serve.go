package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/app"
	"github.com/sha1n/prompts-mcp-server/internal/auth"
	"github.com/sha1n/prompts-mcp-server/internal/config"
)

const shutdownTimeout = 5 * time.Second

func transportFor(settings *config.Settings) app.ServeFunc {
	if settings.Transport == config.TransportSSE {
		return func(ctx context.Context, s *server.MCPServer) error {
			return StartSSEServer(ctx, s, settings)
		}
	}
	return StartStdioServer
}

// StartStdioServer serves MCP over stdin/stdout until ctx is done or stdin closes
func StartStdioServer(ctx context.Context, s *server.MCPServer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))

	slog.Info("Starting stdio server")
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// StartSSEServer serves MCP over HTTP server-sent events until ctx is done
func StartSSEServer(ctx context.Context, s *server.MCPServer, settings *config.Settings) error {
	addr := net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))
	scheme := "http"
	if settings.TLSEnabled() {
		scheme = "https"
	}

	sse, handler, err := newSSEHandler(ctx, s, settings, fmt.Sprintf("%s://%s", scheme, addr))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting SSE server", "addr", addr, "tls", settings.TLSEnabled(), "auth", settings.Auth.Type)
		if settings.TLSEnabled() {
			errCh <- httpServer.ListenAndServeTLS(settings.CertFile, settings.KeyFile)
		} else {
			errCh <- httpServer.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			slog.Warn("SSE shutdown failed", "error", err)
		}
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newSSEHandler builds the SSE transport behind the configured auth middleware.
// An empty baseURL makes message endpoints relative.
func newSSEHandler(ctx context.Context, s *server.MCPServer, settings *config.Settings, baseURL string) (*server.SSEServer, http.Handler, error) {
	var opts []server.SSEOption
	if baseURL != "" {
		opts = append(opts, server.WithBaseURL(baseURL))
	}
	sse := server.NewSSEServer(s, opts...)

	middleware, err := auth.NewMiddleware(ctx, settings.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure auth: %w", err)
	}
	return sse, middleware(sse), nil
}
