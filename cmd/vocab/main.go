// Command vocab serves the vocabulary enrichment web application and offers
// the same pipeline from the command line.
//
//	vocab                     # run the HTTP server (default)
//	vocab serve --config c.yaml
//	vocab enrich words.txt -o out.csv --clean
//	vocab translate "He ran fast."
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := newServeCommand(&configPath)

	root := &cobra.Command{
		Use:   "vocab",
		Short: "Vocabulary enrichment service",
		Long: `vocab looks up English words in online dictionaries, translates the
definitions and examples, and exports the result as CSV.

Without a subcommand it runs the HTTP server.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		serve,
		newEnrichCommand(&configPath),
		newTranslateCommand(&configPath),
		newVersionCommand(),
	)
	return root
}
