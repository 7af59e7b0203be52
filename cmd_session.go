package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/snsclone-go/models"
)

var (
	credEmail    string
	credPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Registers a new account, signs in and creates a profile named "anonymous".
Change the nickname afterwards with 'snsclone profile --nickname'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := s.app.SignUp(ctx, credential()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered and signed in as %s\n", s.app.State().Session.Me.Nickname)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := s.app.SignIn(ctx, credential()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", s.app.State().Session.Me.Nickname)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := s.app.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&credEmail, "email", "e", "", "account email")
		c.Flags().StringVarP(&credPassword, "password", "p", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
}

func credential() models.Credential {
	return models.Credential{Email: credEmail, Password: credPassword}
}
