package state

import "github.com/user/snsclone-go/models"

// Reduce applies m to s and returns the next state. It is total: unknown messages
// return s unchanged.
func Reduce(s State, m Msg) State {
	switch m := m.(type) {
	// loading flags
	case BeginAuthRequest:
		s.Session.AuthLoading = true
	case EndAuthRequest:
		s.Session.AuthLoading = false
	case BeginPostRequest:
		s.Feed.PostLoading = true
	case EndPostRequest:
		s.Feed.PostLoading = false

	// overlays
	case ShowSignIn:
		s.Overlay = OverlaySignIn
	case HideSignIn:
		s.Overlay = hide(s.Overlay, OverlaySignIn)
	case ShowSignUp:
		s.Overlay = OverlaySignUp
	case HideSignUp:
		s.Overlay = hide(s.Overlay, OverlaySignUp)
	case ShowProfileEditor:
		s.Overlay = OverlayProfileEditor
	case HideProfileEditor:
		s.Overlay = hide(s.Overlay, OverlayProfileEditor)
	case ShowComposer:
		s.Overlay = OverlayComposer
	case HideComposer:
		s.Overlay = hide(s.Overlay, OverlayComposer)

	// session mirror
	case SetOwnNickname:
		s.Session.Me.Nickname = m.Text
	case ProfileCreated:
		s.Session.Me = m.Profile
	case OwnProfileFetched:
		s.Session.Me = m.Profile
	case ProfilesFetched:
		s.Session.Profiles = NewCollection(m.Profiles...)
	case ProfileUpdated:
		s.Session.Me = m.Profile
		s.Session.Profiles, _ = s.Session.Profiles.Replace(m.Profile)
	case SignedOut:
		s.Session.Me = models.Profile{}
		s.Overlay = OverlaySignIn

	// feed mirror
	case PostsFetched:
		s.Feed.Posts = NewCollection(m.Posts...)
	case PostCreated:
		s.Feed.Posts = s.Feed.Posts.Append(m.Post)
	case CommentsFetched:
		s.Feed.Comments = NewCollection(m.Comments...)
	case CommentCreated:
		s.Feed.Comments = s.Feed.Comments.Append(m.Comment)
	case LikeToggled:
		s.Feed.Posts, _ = s.Feed.Posts.Replace(m.Post)
	}
	return s
}

// hide closes target only if it is the overlay currently showing.
func hide(current, target Overlay) Overlay {
	if current == target {
		return OverlayNone
	}
	return current
}
