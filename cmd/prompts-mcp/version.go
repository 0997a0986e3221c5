package main

import (
	"fmt"

	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "prompts-mcp %s\n", domain.Version)
			return err
		},
	}
}
