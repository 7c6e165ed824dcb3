// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"topictree/internal/database"
	"topictree/internal/models"
	"topictree/internal/store"
)

func newEventsCmd(a *app) *cobra.Command {
	var (
		jobID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent build status changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(a.cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			s := store.NewJobEventStore(db)

			var events []models.JobEvent
			if jobID != "" {
				id, err := uuid.Parse(jobID)
				if err != nil {
					return fmt.Errorf("invalid job id %q: %w", jobID, err)
				}
				events, err = s.ForJob(id)
				if err != nil {
					return err
				}
			} else {
				events, err = s.RecentEntries(limit)
				if err != nil {
					return err
				}
			}
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobID, "job", "", "Only events of this job")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Number of recent events")

	return cmd
}

func printEvents(w io.Writer, events []models.JobEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %s  %-13s %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), e.JobID, e.Status, e.Message)
	}
}
