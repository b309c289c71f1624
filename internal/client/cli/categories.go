package cli

import (
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Manage clinical (c) and paraclinical (p) test categories",
	}

	listCmd := &cobra.Command{
		Use:   "list <c|p>",
		Short: "List categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := results.ParseKind(args[0])
			if err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			res, err := a.catalog.List(cmd.Context(), kind, page, limit)
			if err != nil {
				return err
			}
			renderCategories(a.out, res.Items)
			return nil
		},
	}
	listCmd.Flags().Int("page", 0, "page number, starting at 0")
	listCmd.Flags().Int("limit", 100, "categories per page")

	addCmd := &cobra.Command{
		Use:   "add <c|p> <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := results.ParseKind(args[0])
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString("description")
			c, err := a.catalog.Create(cmd.Context(), kind, models.CategoryInput{Name: args[1], Description: desc})
			if err != nil {
				return err
			}
			a.printf("Created %s category %s %q.\n", kind, c.ID, c.Name)
			return nil
		},
	}
	addCmd.Flags().String("description", "", "category description")

	editCmd := &cobra.Command{
		Use:   "edit <c|p> <id> <name>",
		Short: "Rename a category or change its description",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := results.ParseKind(args[0])
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString("description")
			c, err := a.catalog.Update(cmd.Context(), kind, models.ParseID(args[1]),
				models.CategoryInput{Name: args[2], Description: desc})
			if err != nil {
				return err
			}
			a.printf("Updated %s category %s %q.\n", kind, c.ID, c.Name)
			return nil
		},
	}
	editCmd.Flags().String("description", "", "category description")

	deleteCmd := &cobra.Command{
		Use:   "delete <c|p> <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := results.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := models.ParseID(args[1])
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !Confirm(a.in, "Delete "+string(kind)+" category "+id.String()+"?", a.out) {
				a.println("Cancelled.")
				return nil
			}
			if err := a.catalog.Delete(cmd.Context(), kind, id); err != nil {
				return err
			}
			a.printf("Deleted %s category %s.\n", kind, id)
			return nil
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(listCmd, addCmd, editCmd, deleteCmd)
	return cmd
}
