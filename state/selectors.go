package state

import "github.com/user/snsclone-go/models"

// SignedIn reports whether the caller's profile is loaded. An empty nickname is the
// signed-out sentinel.
func (s State) SignedIn() bool {
	return s.Session.Me.Nickname != ""
}

// Loading reports whether any auth or post/comment request is in flight.
func (s State) Loading() bool {
	return s.Session.AuthLoading || s.Feed.PostLoading
}

// PostsNewestFirst returns posts in display order. Storage order is creation order;
// the reversal happens here and nowhere else.
func (s State) PostsNewestFirst() []models.Post {
	posts := s.Feed.Posts.Items()
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
	return posts
}

// Post looks a post up by id.
func (s State) Post(id int64) (models.Post, bool) {
	return s.Feed.Posts.Get(id)
}

// CommentsOnPost returns the comments whose postRef is postID, oldest first.
func (s State) CommentsOnPost(postID int64) []models.Comment {
	return s.Feed.Comments.Filter(func(c models.Comment) bool {
		return c.PostRef == postID
	})
}

// ProfileByOwner finds the profile owned by account ref.
func (s State) ProfileByOwner(ref int64) (models.Profile, bool) {
	matches := s.Session.Profiles.Filter(func(p models.Profile) bool {
		return p.OwnerRef == ref
	})
	if len(matches) == 0 {
		return models.Profile{}, false
	}
	return matches[0], true
}
