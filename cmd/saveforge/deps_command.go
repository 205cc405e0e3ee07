package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"saveforge/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools the editor depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check([]deps.Requirement{
				{
					Name:        "uesave",
					Path:        cfg.Converter.UesavePath,
					Description: "Save container converter",
				},
			})

			rows := make([][]string, 0, len(statuses))
			missing := false
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						missing = true
					}
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Path
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if missing {
				return fmt.Errorf("required external tools are missing")
			}
			return nil
		},
	}
}
