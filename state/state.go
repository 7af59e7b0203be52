// Package state is the client-side mirror of server resources plus transient UI state.
// It does no I/O: the app layer performs requests and feeds their outcomes in as
// messages, and Reduce turns (State, Msg) into the next State. Store wraps that pure
// core with locking and change notification.
package state

import "github.com/user/snsclone-go/models"

// Overlay names the single view layered over the feed, if any.
// Only one overlay can be active at a time.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlaySignIn
	OverlaySignUp
	OverlayProfileEditor
	OverlayComposer
)

func (o Overlay) String() string {
	switch o {
	case OverlaySignIn:
		return "sign-in"
	case OverlaySignUp:
		return "sign-up"
	case OverlayProfileEditor:
		return "profile-editor"
	case OverlayComposer:
		return "composer"
	default:
		return "none"
	}
}

// SessionState tracks authentication UI state and the caller's identity/profile roster.
type SessionState struct {
	AuthLoading bool
	Me          models.Profile // zero value is the signed-out sentinel
	Profiles    Collection[models.Profile]
}

// FeedState mirrors posts and comments.
type FeedState struct {
	PostLoading bool
	Posts       Collection[models.Post]
	Comments    Collection[models.Comment]
}

// State is the whole client state. Session and Feed own disjoint entities; the
// overlay is shared because at most one view may be open across both.
type State struct {
	Overlay Overlay
	Session SessionState
	Feed    FeedState
}

// Initial returns the state a fresh client starts in: empty mirrors with the
// sign-in view showing.
func Initial() State {
	return State{Overlay: OverlaySignIn}
}
