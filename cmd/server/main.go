package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mockllm",
		Short:         "Mock server for the legacy text completion API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newSchemaCmd())

	return root
}

func printBanner() {
	banner := `
╔╦╗┌─┐┌─┐┬┌─╦  ╦  ╔╦╗
║║║│ ││  ├┴┐║  ║  ║║║
╩ ╩└─┘└─┘┴ ┴╩═╝╩═╝╩ ╩
    Deterministic Completion API Double
    ===================================
`
	fmt.Println(banner)
}
