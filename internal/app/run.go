package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/watch"
	"golang.org/x/sync/errgroup"
)

// ServeFunc runs an MCP transport until ctx is done or the transport fails
type ServeFunc func(ctx context.Context, s *server.MCPServer) error

// Run serves s.MCP with serve. When watching is enabled, the prompts directory
// is reloaded on change for as long as the transport runs.
func (s *Server) Run(ctx context.Context, serve ServeFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if s.settings.Watch {
		w := watch.New(s.Registry.Dir(), func(ctx context.Context) {
			s.Registry.LoadAll(ctx)
		})
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	g.Go(func() error {
		// a transport that returns stops the watcher too
		defer cancel()
		err := serve(ctx, s.MCP)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	if err != nil {
		slog.Error("Server error", "error", err)
	}
	return err
}
