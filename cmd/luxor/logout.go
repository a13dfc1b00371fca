package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxor-app/luxor-auth/internal/i18n"
)

func newLogoutCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and erase the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if err := c.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(c.Language, i18n.SignedOut))
			return nil
		},
	}
}
