package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"saveforge/internal/services/uesave"
	"saveforge/internal/session"
)

// loadSave routes a path to the right loader: .sav containers go through
// the converter, anything else is treated as a document.
func loadSave(cmd *cobra.Command, sess *session.Session, path string) error {
	if strings.EqualFold(filepath.Ext(path), uesave.ContainerExt) {
		return sess.LoadContainer(cmd.Context(), path)
	}
	return sess.LoadDocument(cmd.Context(), path)
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <save-file> <save-key>...",
		Short: "Print inventory values from a save file or document",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := loadSave(cmd, sess, args[0]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range args[1:] {
				value, ok := sess.Get(key)
				if !ok {
					// Absent is not zero; render it as empty.
					fmt.Fprintf(out, "%s=\n", key)
					continue
				}
				fmt.Fprintf(out, "%s=%d\n", key, value)
			}
			return nil
		},
	}
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "set <save-file> <save-key>=<value>...",
		Short: "Edit inventory values and commit the result",
		Long: "Loads the save, applies each <save-key>=<value> edit, and commits the\n" +
			"document with a backup taken first. With --export the edited document is\n" +
			"also converted back into a container.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := loadSave(cmd, sess, args[0]); err != nil {
				return err
			}

			for _, pair := range args[1:] {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("edit %q is not <save-key>=<value>", pair)
				}
				if err := sess.SetString(key, value); err != nil {
					return err
				}
			}

			if err := sess.Commit(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Committed %d edit(s) to %s\n", len(args[1:]), sess.Document().Path())

			fromContainer := strings.EqualFold(filepath.Ext(args[0]), uesave.ContainerExt)
			if export || fromContainer {
				containerPath, err := sess.Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported container to %s\n", containerPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Convert the committed document back into a container")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <document>",
		Short: "Convert a document back into its save container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.LoadDocument(cmd.Context(), args[0]); err != nil {
				return err
			}
			containerPath, err := sess.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported container to %s\n", containerPath)
			return nil
		},
	}
}
