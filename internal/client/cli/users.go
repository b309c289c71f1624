package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/spf13/cobra"
)

// userLookupSize bounds the page fetched to resolve a user by id.
const userLookupSize = 1000

func (a *App) findUser(ctx context.Context, id models.ID) (models.User, error) {
	page, err := a.iam.ListUsers(ctx, 0, userLookupSize)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range page.Items {
		if u.ID.Equal(id) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, client.ErrNotFound)
}

func (a *App) SetRoles(ctx context.Context, userID models.ID, roleIDs []models.ID) error {
	user, err := a.findUser(ctx, userID)
	if err != nil {
		return err
	}

	change, err := a.iam.SetRoles(ctx, user, roleIDs)
	for _, r := range change.Added {
		a.printf("+ %s\n", r.RoleName)
	}
	for _, r := range change.Removed {
		a.printf("- %s\n", r.RoleName)
	}
	if err != nil {
		return err
	}
	if len(change.Added)+len(change.Removed) == 0 {
		a.println("No changes.")
	}
	return nil
}

func usersCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List admin accounts and manage their roles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			res, err := a.iam.ListUsers(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			renderUsers(a.out, res)
			return nil
		},
	}
	listCmd.Flags().Int("page", 0, "page number, starting at 0")
	listCmd.Flags().Int("size", 20, "users per page")

	rolesCmd := &cobra.Command{
		Use:   "roles",
		Short: "List the roles that can be granted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := a.iam.ListRoles(cmd.Context())
			if err != nil {
				return err
			}
			renderRoles(a.out, roles)
			return nil
		},
	}

	setRolesCmd := &cobra.Command{
		Use:   "set-roles <userID> [roleID...]",
		Short: "Replace a user's roles with the given ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]models.ID, 0, len(args)-1)
			for _, s := range args[1:] {
				ids = append(ids, models.ParseID(s))
			}
			return a.SetRoles(cmd.Context(), models.ParseID(args[0]), ids)
		},
	}

	cmd.AddCommand(listCmd, rolesCmd, setRolesCmd)
	return cmd
}
