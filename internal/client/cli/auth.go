package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/services"
	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/spf13/cobra"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

func (a *App) Login(ctx context.Context, token string) error {
	if token == "" {
		var err error
		if token, err = getSecret(a.in, "Paste access token", a.out); err != nil {
			return err
		}
	}

	info, err := a.auth.Login(ctx, token)
	if errors.Is(err, common.ErrTokenExpired) {
		a.printf("Token expired at %s; sign in again to get a fresh one.\n", info.ExpiresAt.Local().Format(time.RFC1123))
		return err
	}
	if err != nil {
		return err
	}

	a.println("Logged in.")
	a.printTokenInfo(info)
	return nil
}

func (a *App) printTokenInfo(info *services.TokenInfo) {
	if info.Email != "" {
		a.printf("  email:   %s\n", info.Email)
	}
	if info.Subject != "" {
		a.printf("  subject: %s\n", info.Subject)
	}
	if len(info.Roles) > 0 {
		a.printf("  roles:   %v\n", info.Roles)
	}
	if info.ExpiresAt != nil {
		a.printf("  expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
}

func loginCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login [token]",
		Short: "Store the access token issued by the admin sign-in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			}
			return a.Login(cmd.Context(), token)
		},
	}
}

func logoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			a.println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show what the stored access token says",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.auth.Status(cmd.Context())
			if err != nil {
				return err
			}
			a.printTokenInfo(info)
			if info.Expired(time.Now()) {
				a.println("The token has expired.")
			}
			return nil
		},
	}
}
