package app

import (
	"context"
	"sync"

	"github.com/user/snsclone-go/models"
)

// fakeGateway records every call by name and answers from canned data.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	me         models.Profile
	meErr      error
	profiles   []models.Profile
	posts      []models.Post
	comments   []models.Comment
	loginErr   error
	listErr    error
	postErr    error
	commentErr error
	likeErr    error

	likeUpdates []models.LikeUpdate
	// likeGate, when set, blocks UpdateLikes until closed or until the request ctx ends.
	likeGate chan struct{}
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) CreateSession(_ context.Context, _ models.Credential) (models.TokenPair, error) {
	f.record("CreateSession")
	if f.loginErr != nil {
		return models.TokenPair{}, f.loginErr
	}
	return models.TokenPair{Access: "access-token", Refresh: "refresh-token"}, nil
}

func (f *fakeGateway) Register(_ context.Context, cred models.Credential) (models.Account, error) {
	f.record("Register")
	return models.Account{ID: 1, Email: cred.Email}, nil
}

func (f *fakeGateway) CreateProfile(_ context.Context, p models.NewProfile) (models.Profile, error) {
	f.record("CreateProfile")
	return models.Profile{ID: 10, Nickname: p.Nickname, OwnerRef: 1}, nil
}

func (f *fakeGateway) UpdateProfile(_ context.Context, u models.ProfileUpdate) (models.Profile, error) {
	f.record("UpdateProfile")
	return models.Profile{ID: u.ID, Nickname: u.Nickname, OwnerRef: f.me.OwnerRef}, nil
}

func (f *fakeGateway) MyProfile(_ context.Context) (models.Profile, error) {
	f.record("MyProfile")
	return f.me, f.meErr
}

func (f *fakeGateway) ListProfiles(_ context.Context) ([]models.Profile, error) {
	f.record("ListProfiles")
	return f.profiles, f.listErr
}

func (f *fakeGateway) ListPosts(_ context.Context) ([]models.Post, error) {
	f.record("ListPosts")
	return f.posts, f.listErr
}

func (f *fakeGateway) CreatePost(_ context.Context, p models.NewPost) (models.Post, error) {
	f.record("CreatePost")
	if f.postErr != nil {
		return models.Post{}, f.postErr
	}
	return models.Post{ID: 100, Title: p.Title, AuthorRef: f.me.OwnerRef, LikedBy: []int64{}}, nil
}

func (f *fakeGateway) UpdateLikes(ctx context.Context, u models.LikeUpdate) (models.Post, error) {
	f.record("UpdateLikes")
	if f.likeGate != nil {
		select {
		case <-f.likeGate:
		case <-ctx.Done():
			return models.Post{}, ctx.Err()
		}
	}
	if f.likeErr != nil {
		return models.Post{}, f.likeErr
	}
	f.mu.Lock()
	f.likeUpdates = append(f.likeUpdates, u)
	f.mu.Unlock()

	title := u.Title
	for _, p := range f.posts {
		if p.ID == u.PostID && title == "" {
			title = p.Title
		}
	}
	return models.Post{ID: u.PostID, Title: title, LikedBy: u.LikedBy}, nil
}

func (f *fakeGateway) ListComments(_ context.Context) ([]models.Comment, error) {
	f.record("ListComments")
	return f.comments, f.listErr
}

func (f *fakeGateway) CreateComment(_ context.Context, c models.NewComment) (models.Comment, error) {
	f.record("CreateComment")
	if f.commentErr != nil {
		return models.Comment{}, f.commentErr
	}
	return models.Comment{ID: 200, Text: c.Text, AuthorRef: f.me.OwnerRef, PostRef: c.PostRef}, nil
}
