package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/sha1n/prompts-mcp-server/internal/config"
	"github.com/sha1n/prompts-mcp-server/internal/prompts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the prompts found in the prompts directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(v)
			if err != nil {
				return err
			}
			loader, err := prompts.NewLoaderFor(settings)
			if err != nil {
				return err
			}

			paths, err := prompts.Discover(settings.PromptsDir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tDESCRIPTION")
			for _, path := range paths {
				record, err := loader.Load(path)
				if err != nil {
					slog.Warn("Skipping prompt file", "file", path, "error", err)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", record.Name, record.Title, record.Description)
			}
			return w.Flush()
		},
	}
}
