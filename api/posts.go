package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

// fullLikeRequest is the PUT body; the backend requires the title on a full update.
type fullLikeRequest struct {
	Title string  `json:"title"`
	Liked []int64 `json:"liked"`
}

// partialLikeRequest is the PATCH body carrying only the changed field.
type partialLikeRequest struct {
	Liked []int64 `json:"liked"`
}

// ListPosts fetches every post.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.doJSON(ctx, request{op: "list posts", method: http.MethodGet, path: pathPost, auth: true}, nil, &posts)
	return posts, err
}

// CreatePost uploads a new post as multipart {title, img?}.
func (c *Client) CreatePost(ctx context.Context, p models.NewPost) (models.Post, error) {
	body, contentType, err := multipartBody([]formField{{name: "title", value: p.Title}}, "img", p.Image)
	if err != nil {
		return models.Post{}, apperror.NewInternalError("create post: encode form", err)
	}
	var post models.Post
	err = c.do(ctx, request{
		op:          "create post",
		method:      http.MethodPost,
		path:        pathPost,
		auth:        true,
		body:        body,
		contentType: contentType,
	}, &post)
	return post, err
}

// UpdateLikes sends a like-toggle built by state.BuildLikeToggle: PUT with the title
// for a full update, PATCH with only the list otherwise.
func (c *Client) UpdateLikes(ctx context.Context, u models.LikeUpdate) (models.Post, error) {
	liked := u.LikedBy
	if liked == nil {
		// Encode as [] rather than null.
		liked = []int64{}
	}
	req := request{path: fmt.Sprintf("%s%d/", pathPost, u.PostID), auth: true}

	var (
		post models.Post
		err  error
	)
	if u.Mode == models.LikeFull {
		req.op, req.method = "replace post likes", http.MethodPut
		err = c.doJSON(ctx, req, fullLikeRequest{Title: u.Title, Liked: liked}, &post)
	} else {
		req.op, req.method = "patch post likes", http.MethodPatch
		err = c.doJSON(ctx, req, partialLikeRequest{Liked: liked}, &post)
	}
	return post, err
}
