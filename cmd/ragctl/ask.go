package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/pkg/formatter"
	"github.com/spf13/cobra"
)

type askOptions struct {
	format string
	output string
}

func newAskCmd(root *rootOptions) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the ingested document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			core, err := root.buildCore(cmd.Context())
			if err != nil {
				return err
			}
			defer core.Close()

			if _, err := core.Ingest(cmd.Context()); err != nil {
				return err
			}

			answer, err := core.Answerer.Answer(cmd.Context(), question)
			if err != nil {
				return err
			}

			if opts.format == "" {
				fmt.Fprintln(cmd.OutOrStdout(), answer)
				return nil
			}

			f, err := core.Formatters.Create(entity.ResultFormat(strings.ToLower(opts.format)))
			if err != nil {
				return err
			}

			data, err := f.Format(entity.AnswerDocument{Question: question, Answer: answer})
			if err != nil {
				return fmt.Errorf("export answer: %w", err)
			}

			path := opts.output
			if path == "" {
				path = formatter.Filename(question, f)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "answer written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Export the answer as md, pdf or docx instead of printing it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Export file path (default derived from the question)")

	return cmd
}
