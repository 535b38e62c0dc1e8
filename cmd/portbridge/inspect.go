package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/service"
	"github.com/jask/portbridge/internal/tui"
)

func inspectCmd() *cobra.Command {
	var title string
	var theme string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run the demo app core on a simulated document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !cmd.Flags().Changed("title") {
				title = cfg.Host.Title
			}
			flags := core.Flags(cfg.Flags)
			if theme != "" {
				flags = core.Flags{}
				for k, v := range cfg.Flags {
					flags[k] = v
				}
				flags["theme"] = theme
			}

			var extra []bridge.Observer
			var rec *service.Recorder
			if journalEnabled() {
				db, err := openJournal(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				rec = service.NewRecorder(ctx, db)
				id, err := rec.Begin("inspect", title, flags)
				if err != nil {
					return err
				}
				log.Infof("journal session %s", id)
				extra = append(extra, rec)
			}

			app, err := tui.New(title, flags, extra...)
			if err != nil {
				return err
			}
			defer app.Close()

			_, runErr := tea.NewProgram(app, tea.WithAltScreen()).Run()
			if rec != nil {
				if err := rec.End(); err != nil {
					log.Errorf("%s", err)
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "initial document title (default from config)")
	cmd.Flags().StringVar(&theme, "theme", "", "theme flag passed to the app core")
	return cmd
}
