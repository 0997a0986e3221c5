package main

import (
	"fmt"
	"os"

	"github.com/sha1n/prompts-mcp-server/internal/app"
	"github.com/sha1n/prompts-mcp-server/internal/config"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/sha1n/prompts-mcp-server/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "prompts-mcp",
		Short:         "MCP server exposing a directory of markdown prompts",
		Version:       domain.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(os.Stderr, v.GetString(config.KeyLogLevel))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyPromptsDir, "", "Directory containing prompt files (env PROMPTS_DIR)")
	flags.String(config.KeyFallbackEncoding, "", "Encoding tried for files that are not valid UTF-8, e.g. windows-1252")
	flags.String(config.KeyLogLevel, "info", "Log level: debug, info, warn, error")

	serveFlags := cmd.Flags()
	serveFlags.String(config.KeyTransport, config.TransportStdio, "Transport: stdio or sse")
	serveFlags.String(config.KeyHost, "localhost", "SSE listen host")
	serveFlags.Int(config.KeyPort, 8080, "SSE listen port")
	serveFlags.String(config.KeyCertFile, "", "TLS certificate file")
	serveFlags.String(config.KeyKeyFile, "", "TLS key file")
	serveFlags.String(config.KeyScheme, "prompts", "URI scheme of prompt resources")
	serveFlags.String(config.KeyMetadata, "", "Server metadata YAML file")
	serveFlags.Bool(config.KeyWatch, false, "Reload prompts when the directory changes")
	serveFlags.Int(config.KeySearchMaxResults, 10, "Default number of search results")
	serveFlags.String(config.KeySearchIndexPath, "", "On-disk search index location (in memory when empty)")
	serveFlags.String(config.KeyAuthType, "none", "SSE auth: none, basic, apikey, oidc")
	serveFlags.String(config.KeyAuthBasicUsername, "", "Basic auth username")
	serveFlags.String(config.KeyAuthBasicPassword, "", "Basic auth password")
	serveFlags.String(config.KeyAuthAPIKey, "", "API key")
	serveFlags.String(config.KeyAuthOIDCIssuer, "", "OIDC issuer URL")
	serveFlags.String(config.KeyAuthOIDCClientID, "", "OIDC client ID")

	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(serveFlags)

	cmd.AddCommand(newListCmd(v), newVersionCmd())
	return cmd
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	srv, err := app.New(settings)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	shutdown := app.NewShutdown(os.Exit, srv.Close)
	shutdown.Arm()
	defer shutdown.Disarm()

	if err := srv.Run(cmd.Context(), transportFor(settings)); err != nil {
		return reported{err}
	}
	return nil
}
