package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VighneshDev1411/mockllm/internal/api"
	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
)

func newTokensCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Count or truncate text with a model's encoding",
	}
	cmd.PersistentFlags().StringVarP(&model, "model", "m", "gpt-4", "model whose encoding is used")

	count := &cobra.Command{
		Use:   "count TEXT",
		Short: "Print the token count of TEXT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counter, err := tokenizer.New(model)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", counter.Count(strings.Join(args, " ")))
			return nil
		},
	}

	var maxTokens int
	truncate := &cobra.Command{
		Use:   "truncate TEXT",
		Short: "Print TEXT cut to at most --max tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxTokens < 0 {
				return fmt.Errorf("--max must be non-negative, got %d", maxTokens)
			}
			counter, err := tokenizer.New(model)
			if err != nil {
				return err
			}
			out, err := counter.TruncateTo(strings.Join(args, " "), maxTokens)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	truncate.Flags().IntVar(&maxTokens, "max", 16, "maximum number of tokens to keep")

	cmd.AddCommand(count, truncate)
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a completion request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSchema(cmd.OutOrStdout())
		},
	}
}

func writeSchema(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(api.CompletionRequestSchema())
}
