package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-management/library"
)

var (
	configPath  string
	catalogPath string
	logLevel    string
)

func main() {
	root := &cobra.Command{
		Use:   "library",
		Short: "In-memory library management system",
		Long: "Manages a book catalog, patrons, lending, reservations and\n" +
			"recommendations across branches. State lives in memory; an optional\n" +
			"SQLite catalog file seeds it at startup.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a SQLite catalog file to seed from")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newShellCmd(), newDemoCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildLibrary assembles a library from the flags shared by all commands.
func buildLibrary() (*library.Library, zerolog.Logger, error) {
	cfg, err := library.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	lib := library.New(cfg, log)
	if catalogPath != "" {
		stats, err := lib.LoadCatalog(catalogPath)
		if err != nil {
			return nil, log, fmt.Errorf("seed from %s: %w", catalogPath, err)
		}
		log.Info().
			Int("books", stats.Books).
			Int("patrons", stats.Patrons).
			Int("branches", stats.Branches).
			Msg("catalog loaded")
	}
	return lib, log, nil
}

func newExportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current library state as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, _, err := buildLibrary()
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return lib.WriteSnapshot(out)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
