package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/snsclone-go/models"
	"github.com/user/snsclone-go/state"
)

var (
	postTitle string
	postImage string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show posts, newest first, with likes and comments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := requireSignedIn(ctx, s.app); err != nil {
				return err
			}
			renderFeed(cmd.OutOrStdout(), s.app.State())
			return nil
		})
	},
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a photo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readUpload(postImage)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := requireSignedIn(ctx, s.app); err != nil {
				return err
			}
			post, err := s.app.CreatePost(ctx, models.NewPost{Title: postTitle, Image: image})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted #%d %s\n", post.ID, post.Title)
			return nil
		})
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <post-id> <text>...",
	Short: "Comment on a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := requireSignedIn(ctx, s.app); err != nil {
				return err
			}
			if _, err := s.app.AddComment(ctx, postID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "commented on #%d\n", postID)
			return nil
		})
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post, or take the like back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if err := requireSignedIn(ctx, s.app); err != nil {
				return err
			}
			post, err := s.app.ToggleLike(ctx, postID)
			if err != nil {
				return err
			}
			verb := "unliked"
			if post.LikedByAccount(s.app.State().Session.Me.OwnerRef) {
				verb = "liked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d (%d likes)\n", verb, post.ID, len(post.LikedBy))
			return nil
		})
	},
}

func init() {
	postCmd.Flags().StringVarP(&postTitle, "title", "t", "", "post title")
	postCmd.Flags().StringVarP(&postImage, "image", "i", "", "path to the image file")
	_ = postCmd.MarkFlagRequired("title")
	_ = postCmd.MarkFlagRequired("image")
}

// renderFeed prints posts newest first, each followed by its comments.
func renderFeed(w io.Writer, s state.State) {
	posts := s.PostsNewestFirst()
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts yet")
		return
	}
	me := s.Session.Me.OwnerRef
	for _, p := range posts {
		mark := " "
		if p.LikedByAccount(me) {
			mark = "*"
		}
		fmt.Fprintf(w, "#%d %s  by %s  %s  %s%d likes\n", p.ID, p.Title, nickname(s, p.AuthorRef), p.CreatedOn, mark, len(p.LikedBy))
		if p.ImageURL != "" {
			fmt.Fprintf(w, "    %s\n", p.ImageURL)
		}
		for _, c := range s.CommentsOnPost(p.ID) {
			fmt.Fprintf(w, "    %s: %s\n", nickname(s, c.AuthorRef), c.Text)
		}
	}
}

func nickname(s state.State, owner int64) string {
	if p, ok := s.ProfileByOwner(owner); ok && p.Nickname != "" {
		return p.Nickname
	}
	return "unknown"
}

func parsePostID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}

// readUpload loads an image file for upload. An empty path means no image.
func readUpload(path string) (*models.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &models.Upload{Filename: filepath.Base(path), Data: data}, nil
}
