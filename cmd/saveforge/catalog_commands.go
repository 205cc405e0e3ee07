package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"saveforge/internal/catalog"
)

func newFieldsCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List editable fields from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			items := cat.Items
			if categoryFlag != "" {
				main, sub, ok := strings.Cut(categoryFlag, ".")
				if !ok {
					return fmt.Errorf("category %q is not <main>.<sub>", categoryFlag)
				}
				items = cat.FieldsInCategory(main, sub)
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				quantity := ""
				if item.Quantity != nil {
					quantity = strconv.FormatInt(*item.Quantity, 10)
				}
				rows = append(rows, []string{item.Name, item.SaveKey, item.Category, quantity})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Save Key", "Category", "Quantity"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Restrict to one <main>.<sub> category")
	return cmd
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the catalog's category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			index := cat.CategoryIndex()
			mains := make([]string, 0, len(index))
			for main := range index {
				mains = append(mains, main)
			}
			sort.Strings(mains)

			rows := make([][]string, 0, len(mains))
			for _, main := range mains {
				rows = append(rows, []string{main, strings.Join(index[main], ", ")})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Subcategories"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the field catalog",
	}
	cmd.AddCommand(newCatalogValidateCommand(ctx))
	cmd.AddCommand(newCatalogPatchCommand(ctx))
	return cmd
}

func newCatalogValidateCommand(ctx *commandContext) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check catalog categories and optionally repair them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Loaded directly instead of through loadCatalog: a validation
			// failure is the very condition this command repairs.
			cat, err := catalog.Load(cfg.Catalog.MappingPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := cat.Validate()
			if len(invalid) == 0 {
				fmt.Fprintln(out, "Catalog is valid.")
				return nil
			}

			if err := catalog.WriteValidationLog(invalid, cfg.Catalog.ValidationLog); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d item(s) missing subcategories; details in %s\n",
				len(invalid), cfg.Catalog.ValidationLog)

			if !fix {
				for _, item := range invalid {
					fmt.Fprintf(out, "- %s (category: %s)\n", item.Name, item.Category)
				}
				return nil
			}

			requiresRestart, err := cat.Repair(invalid)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Repaired %d item(s) with the %q subcategory.\n",
				len(invalid), catalog.DefaultSubcategory)
			if requiresRestart {
				fmt.Fprintln(out, "Catalog rewritten; restart any running editor before continuing.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Append the default subcategory to invalid entries")
	return cmd
}

func newCatalogPatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "patch",
		Short: "Fold master-list quantities into the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			cat, err := catalog.Load(cfg.Catalog.MappingPath)
			if err != nil {
				return err
			}

			warnings, err := cat.PatchWithMasterList(cfg.Catalog.MasterListPath, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, warning := range warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			fmt.Fprintf(out, "Patched catalog from %s\n", cfg.Catalog.MasterListPath)
			return nil
		},
	}
}
