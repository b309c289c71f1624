package cli

import (
	"bytes"
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/filex"
	"github.com/spf13/cobra"
)

func casesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Browse and publish patient cases",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List patient cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			res, err := a.cases.List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			renderCases(a.out, res)
			return nil
		},
	}
	listCmd.Flags().Int("page", 0, "page number, starting at 0")
	listCmd.Flags().Int("limit", 10, "cases per page")

	publish := func(published bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			id := models.ParseID(args[0])
			if err := a.cases.SetPublished(cmd.Context(), id, published); err != nil {
				return err
			}
			status := models.StatusUnpublished
			if published {
				status = models.StatusPublished
			}
			a.printf("Case %s is now %s.\n", id, status)
			return nil
		}
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "publish <caseID>",
		Short: "Publish a case",
		Args:  cobra.ExactArgs(1),
		RunE:  publish(true),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unpublish <caseID>",
		Short: "Unpublish a case",
		Args:  cobra.ExactArgs(1),
		RunE:  publish(false),
	})
	exportCmd := &cobra.Command{
		Use:   "export <caseID>",
		Short: "Print a case as JSON, or save it under ./exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.ParseID(args[0])
			save, _ := cmd.Flags().GetBool("save")
			if !save {
				return a.cases.Export(cmd.Context(), id, a.out)
			}
			return a.exportToFile(cmd.Context(), id)
		},
	}
	exportCmd.Flags().Bool("save", false, "write exports/case-<id>.json instead of printing")

	cmd.AddCommand(exportCmd)
	return cmd
}

// exportDir is relative to the working directory.
const exportDir = "exports"

func (a *App) exportToFile(ctx context.Context, id models.ID) error {
	var buf bytes.Buffer
	if err := a.cases.Export(ctx, id, &buf); err != nil {
		return err
	}
	dir, err := filex.EnsureSubDir(exportDir)
	if err != nil {
		return err
	}
	path, err := filex.WriteFileIn(dir, "case-"+id.String()+".json", buf.Bytes())
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", path)
	return nil
}
