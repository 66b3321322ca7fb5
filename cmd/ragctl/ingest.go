package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIngestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Load the configured document into an empty vector store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := opts.buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.Close()

			report, err := core.Ingest(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.Skipped {
				fmt.Fprintf(out, "store already holds %d records, nothing to do\n", report.ExistingCount)
				return nil
			}
			fmt.Fprintf(out, "ingested %d chunks from %d pages\n", report.Chunks, report.Pages)
			return nil
		},
	}
}
