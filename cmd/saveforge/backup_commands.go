package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"saveforge/internal/backup"
)

func newBackupsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List existing save backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			manager, err := backup.NewManager(cfg.Paths.BackupDir)
			if err != nil {
				return err
			}

			records, err := manager.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No backups in %s\n", manager.Dir())
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					filepath.Base(record.Path),
					record.ModTime.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%d", record.Size),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Backup", "Modified", "Bytes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
