package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/vocab-export/internal/app"
	"github.com/heartmarshall/vocab-export/internal/config"
)

// setup loads the config and builds the process logger.
func setup(configPath string) (*config.Config, *slog.Logger, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(config.LogConfig{
		Level:  cfg.EffectiveLevel(),
		Format: cfg.Log.Format,
	})
	return cfg, logger, nil
}

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			if err := app.Serve(cmd.Context(), cfg, logger); err != nil {
				logger.Error("server failed", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

func newEnrichCommand(configPath *string) *cobra.Command {
	var (
		output string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "enrich <word-list.txt>",
		Short: "Enrich a word list and write the CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}

			components, err := app.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer components.Close()

			var n int
			if output == "-" {
				n, err = app.EnrichFile(cmd.Context(), components, logger, args[0], cmd.OutOrStdout(), clean)
			} else {
				n, err = app.EnrichToPath(cmd.Context(), components, logger, args[0], output, clean)
			}
			if err != nil {
				logger.Error("enrichment failed", slog.String("error", err.Error()))
				return err
			}
			logger.Info("export written", slog.String("output", output), slog.Int("rows", n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "vocabulary_export.csv", `output CSV path ("-" for stdout)`)
	cmd.Flags().BoolVar(&clean, "clean", false, "drop non-alphabetic lines and case-insensitive duplicates")
	return cmd
}

func newTranslateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <text>...",
		Short: "Translate each argument with the configured backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}

			components, err := app.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer components.Close()

			for _, line := range app.TranslateTexts(cmd.Context(), components, args) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
