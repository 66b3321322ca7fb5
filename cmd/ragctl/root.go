package main

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/builder"
	"github.com/futig/rag-assistant/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	env string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ragctl",
		Short:         "Manage and query the document question answering store",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", "local", "Environment to run (local, prod, or custom)")

	cmd.AddCommand(newIngestCmd(opts))
	cmd.AddCommand(newAskCmd(opts))

	return cmd
}

// buildCore loads .env.<env> and wires the shared components.
func (o *rootOptions) buildCore(ctx context.Context) (*builder.Core, error) {
	cfg, err := config.Load(o.env)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return builder.BuildCore(ctx, cfg)
}
