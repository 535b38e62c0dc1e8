package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jask/portbridge/internal/database/repository"
	"github.com/jask/portbridge/internal/service"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c2e7"))

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect recorded bridge sessions",
	}
	cmd.AddCommand(journalListCmd(), journalShowCmd(), journalPruneCmd())
	return cmd
}

func journalListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			sums, err := repository.NewSessionRepo(db).ListSummaries(ctx, limit)
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tSOURCE\tMSGS\tVIOLATIONS")
			for _, s := range sums {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", shortID(s.ID), s.StartedAt.Local().Format(time.DateTime), s.Source, s.Messages, s.Violations)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to list")
	return cmd
}

func journalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print one session's traffic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			sessions := repository.NewSessionRepo(db)
			s, err := sessions.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if s == nil {
				if s, err = sessions.FindByPrefix(ctx, args[0]); err != nil {
					return err
				}
			}
			if s == nil {
				return fmt.Errorf("no single session matches %q", args[0])
			}
			msgs, err := repository.NewMessageRepo(db).ListBySession(ctx, s.ID)
			if err != nil {
				return err
			}
			vs, err := repository.NewViolationRepo(db).ListBySession(ctx, s.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("session "+s.ID))
			fmt.Fprintf(out, "source %s, initial title %q, flags %s\n", s.Source, s.InitialTitle, s.Flags)
			for _, line := range mergeTraffic(msgs, vs) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func journalPruneCmd() *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			removed, err := (&service.Maintenance{DB: db}).Prune(ctx, keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d sessions\n", removed)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 20, "number of recent sessions to keep")
	return cmd
}

func shortID(id string) string {
	return id[:min(8, len(id))]
}

// mergeTraffic interleaves messages and violations by sequence number.
func mergeTraffic(msgs []repository.Message, vs []repository.Violation) []string {
	out := make([]string, 0, len(msgs)+len(vs))
	i, j := 0, 0
	for i < len(msgs) || j < len(vs) {
		if j >= len(vs) || (i < len(msgs) && msgs[i].Seq < vs[j].Seq) {
			m := msgs[i]
			arrow := "→"
			if m.Direction == "event" {
				arrow = "←"
			}
			out = append(out, fmt.Sprintf("%4d %s %s %s", m.Seq, arrow, m.Name, m.Payload))
			i++
			continue
		}
		v := vs[j]
		line := fmt.Sprintf("%4d ✗ %s %s: %s", v.Seq, v.Direction, v.Name, v.Reason)
		if v.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %q?)", v.Suggestion)
		}
		out = append(out, line)
		j++
	}
	return out
}
