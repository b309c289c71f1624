package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Without a subcommand the
// interactive shell is started.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "casekeeper",
		Short:         "Administer patient cases and their test results",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Shell(cmd.Context())
			return nil
		},
	}

	root.AddCommand(shellCmd(a))
	root.AddCommand(loginCmd(a), logoutCmd(a), whoamiCmd(a))
	root.AddCommand(casesCmd(a))
	root.AddCommand(categoriesCmd(a))
	root.AddCommand(usersCmd(a))
	root.AddCommand(draftsCmd(a))
	return root
}

func shellCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive editing shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Shell(cmd.Context())
			return nil
		},
	}
}

func draftsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "drafts",
		Short: "List locally saved editing drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Drafts(cmd.Context(), args)
		},
	}
}
