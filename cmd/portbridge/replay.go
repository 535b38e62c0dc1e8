package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/scenario"
	"github.com/jask/portbridge/internal/service"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

func replayCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "replay <scenario.toml>...",
		Short: "Replay scenario files against the bridge",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var rec *service.Recorder
			if journalEnabled() {
				db, err := openJournal(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				rec = service.NewRecorder(ctx, db)
			}

			failed := 0
			for _, path := range args {
				if err := replayOne(cmd, path, rec, quiet); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%v\n", failStyle.Render("FAIL"), path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", passStyle.Render("PASS"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the verdict")
	return cmd
}

func replayOne(cmd *cobra.Command, path string, rec *service.Recorder, quiet bool) error {
	f, err := scenario.Load(path)
	if err != nil {
		return err
	}
	var opts []bridge.Option
	if rec != nil {
		if _, err := rec.Begin("replay:"+path, f.Title, core.Flags(f.Flags)); err != nil {
			return err
		}
		defer func() {
			if err := rec.End(); err != nil {
				log.Errorf("%s", err)
			}
		}()
		opts = append(opts, bridge.WithObserver(rec))
	}

	res, runErr := scenario.Run(f, opts...)
	if !quiet {
		out := cmd.OutOrStdout()
		for _, m := range res.Events {
			fmt.Fprintf(out, "  %s\n", dimStyle.Render("← "+m.String()))
		}
		for _, v := range res.Violations {
			fmt.Fprintf(out, "  %s\n", failStyle.Render("✗ "+v.Error()))
		}
	}
	return runErr
}
