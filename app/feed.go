package app

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
	"github.com/user/snsclone-go/state"
	"github.com/user/snsclone-go/validation"
)

// Refresh reloads posts, the roster and comments.
func (a *App) Refresh(ctx context.Context) error {
	return errors.Join(
		a.refreshPosts(ctx),
		a.refreshProfiles(ctx),
		a.refreshComments(ctx),
	)
}

// CreatePost uploads a new post and closes the composer on success.
func (a *App) CreatePost(ctx context.Context, p models.NewPost) (models.Post, error) {
	if err := validation.NewPost(p); err != nil {
		return models.Post{}, err
	}
	end := a.postRequest()
	defer end()

	post, err := a.gw.CreatePost(ctx, p)
	if err != nil {
		return models.Post{}, err
	}
	a.store.Dispatch(state.PostCreated{Post: post}, state.HideComposer{})
	return post, nil
}

// AddComment comments on postID.
func (a *App) AddComment(ctx context.Context, postID int64, text string) (models.Comment, error) {
	nc := models.NewComment{Text: text, PostRef: postID}
	if err := validation.NewComment(nc); err != nil {
		return models.Comment{}, err
	}
	end := a.postRequest()
	defer end()

	comment, err := a.gw.CreateComment(ctx, nc)
	if err != nil {
		return models.Comment{}, err
	}
	a.store.Dispatch(state.CommentCreated{Comment: comment})
	return comment, nil
}

// ToggleLike flips the caller's like on postID, computed from the post as currently
// mirrored. Concurrent toggles of the same post share one request and its result.
// The shared request is detached from any single caller's cancellation; a caller whose
// ctx ends stops waiting and gets ctx.Err() while the others still receive the result.
func (a *App) ToggleLike(ctx context.Context, postID int64) (models.Post, error) {
	shared := context.WithoutCancel(ctx)
	ch := a.likes.DoChan(strconv.FormatInt(postID, 10), func() (interface{}, error) {
		return a.toggleLike(shared, postID)
	})

	select {
	case <-ctx.Done():
		return models.Post{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			a.logger.Debug("like toggle coalesced", zap.Int64("post", postID))
		}
		if res.Err != nil {
			return models.Post{}, res.Err
		}
		return res.Val.(models.Post), nil
	}
}

func (a *App) toggleLike(ctx context.Context, postID int64) (models.Post, error) {
	s := a.store.Snapshot()
	actor := s.Session.Me.OwnerRef
	if actor == 0 {
		return models.Post{}, apperror.NewAuthError("not signed in", nil)
	}
	post, ok := s.Post(postID)
	if !ok {
		return models.Post{}, apperror.NewNotFoundError("post "+strconv.FormatInt(postID, 10)+" is not loaded", nil)
	}

	update := state.BuildLikeToggle(post, actor)
	end := a.postRequest()
	defer end()

	updated, err := a.gw.UpdateLikes(ctx, update)
	if err != nil {
		a.logger.Warn("like toggle failed", zap.Int64("post", postID), zap.Stringer("mode", update.Mode), zap.Error(err))
		return models.Post{}, err
	}
	a.store.Dispatch(state.LikeToggled{Post: updated})
	return updated, nil
}

func (a *App) refreshPosts(ctx context.Context) error {
	posts, err := a.gw.ListPosts(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.PostsFetched{Posts: posts})
	return nil
}

func (a *App) refreshComments(ctx context.Context) error {
	comments, err := a.gw.ListComments(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.CommentsFetched{Comments: comments})
	return nil
}
