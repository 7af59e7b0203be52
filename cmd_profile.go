package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	profileNickname string
	profileImage    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Without flags, prints your profile. With --nickname and/or --image the
profile is updated first; the nickname defaults to the current one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readUpload(profileImage)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := requireSignedIn(ctx, s.app); err != nil {
				return err
			}
			if profileNickname != "" || image != nil {
				if profileNickname != "" {
					s.app.EditNickname(profileNickname)
				}
				if err := s.app.SaveProfile(ctx, image); err != nil {
					return err
				}
			}

			me := s.app.State().Session.Me
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nickname: %s\n", me.Nickname)
			fmt.Fprintf(out, "since:    %s\n", me.CreatedOn)
			if me.ImageURL != "" {
				fmt.Fprintf(out, "avatar:   %s\n", me.ImageURL)
			}
			return nil
		})
	},
}

func init() {
	profileCmd.Flags().StringVarP(&profileNickname, "nickname", "n", "", "new nickname")
	profileCmd.Flags().StringVarP(&profileImage, "image", "i", "", "path to a new avatar image")
}
