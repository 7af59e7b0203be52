package api

import (
	"context"
	"net/http"

	"github.com/user/snsclone-go/models"
)

// ListComments fetches every comment.
func (c *Client) ListComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.doJSON(ctx, request{op: "list comments", method: http.MethodGet, path: pathComment, auth: true}, nil, &comments)
	return comments, err
}

// CreateComment posts {text, post}.
func (c *Client) CreateComment(ctx context.Context, nc models.NewComment) (models.Comment, error) {
	var comment models.Comment
	err := c.doJSON(ctx, request{op: "create comment", method: http.MethodPost, path: pathComment, auth: true}, nc, &comment)
	return comment, err
}
