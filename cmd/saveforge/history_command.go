package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"saveforge/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var saveFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the operation journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			journal, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer journal.Close()

			events, err := journal.List(cmd.Context(), saveFlag, limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No journaled operations.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(event.Type),
					event.SavePath,
					event.Detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Event", "Save", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&saveFlag, "save", "", "Only show events for this save path")
	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum events to show (0 for all)")
	return cmd
}
