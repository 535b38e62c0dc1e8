package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/jask/portbridge/internal/config"
	"github.com/jask/portbridge/internal/database"

	_ "github.com/tliron/commonlog/simple"
)

var (
	cfg       config.Config
	noJournal bool
	verbose   int

	log = commonlog.GetLogger("portbridge")
)

func Execute() error {
	root := &cobra.Command{
		Use:           "portbridge",
		Short:         "Host bridge between a sandboxed app core and a document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			verbosity := cfg.Log.Verbosity
			if cmd.Flags().Changed("verbose") {
				verbosity = verbose
			}
			var path *string
			if cfg.Log.Path != "" {
				path = &cfg.Log.Path
			}
			commonlog.Configure(verbosity, path)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "do not record traffic in the journal")
	root.PersistentFlags().IntVarP(&verbose, "verbose", "v", 1, "log verbosity (0 = warnings and errors)")

	root.AddCommand(inspectCmd(), replayCmd(), journalCmd(), configCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func journalEnabled() bool {
	return cfg.Journal.Enabled && !noJournal
}

// openJournal prepares the journal database, applying migrations first.
func openJournal(ctx context.Context) (*sql.DB, error) {
	path := cfg.Journal.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir journal dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, err
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return db, nil
}
