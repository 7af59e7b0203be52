package state

import "github.com/user/snsclone-go/models"

// Msg is a request/result message applied by Reduce.
type Msg interface {
	msg()
}

// Session messages.
type (
	BeginAuthRequest  struct{}
	EndAuthRequest    struct{}
	ShowSignIn        struct{}
	HideSignIn        struct{}
	ShowSignUp        struct{}
	HideSignUp        struct{}
	ShowProfileEditor struct{}
	HideProfileEditor struct{}

	// SetOwnNickname edits the caller's nickname locally before it is saved.
	SetOwnNickname struct{ Text string }

	// ProfileCreated and OwnProfileFetched both replace the caller's profile.
	ProfileCreated    struct{ Profile models.Profile }
	OwnProfileFetched struct{ Profile models.Profile }

	// ProfilesFetched replaces the roster.
	ProfilesFetched struct{ Profiles []models.Profile }

	// ProfileUpdated replaces the caller's profile and the roster entry with its id.
	ProfileUpdated struct{ Profile models.Profile }

	// SignedOut resets the caller's profile and brings the sign-in view back.
	SignedOut struct{}
)

// Feed messages.
type (
	BeginPostRequest struct{}
	EndPostRequest   struct{}
	ShowComposer     struct{}
	HideComposer     struct{}

	PostsFetched    struct{ Posts []models.Post }
	PostCreated     struct{ Post models.Post }
	CommentsFetched struct{ Comments []models.Comment }
	CommentCreated  struct{ Comment models.Comment }

	// LikeToggled carries the server's version of the post after a like-toggle.
	LikeToggled struct{ Post models.Post }
)

func (BeginAuthRequest) msg()  {}
func (EndAuthRequest) msg()    {}
func (ShowSignIn) msg()        {}
func (HideSignIn) msg()        {}
func (ShowSignUp) msg()        {}
func (HideSignUp) msg()        {}
func (ShowProfileEditor) msg() {}
func (HideProfileEditor) msg() {}
func (SetOwnNickname) msg()    {}
func (ProfileCreated) msg()    {}
func (OwnProfileFetched) msg() {}
func (ProfilesFetched) msg()   {}
func (ProfileUpdated) msg()    {}
func (SignedOut) msg()         {}
func (BeginPostRequest) msg()  {}
func (EndPostRequest) msg()    {}
func (ShowComposer) msg()      {}
func (HideComposer) msg()      {}
func (PostsFetched) msg()      {}
func (PostCreated) msg()       {}
func (CommentsFetched) msg()   {}
func (CommentCreated) msg()    {}
func (LikeToggled) msg()       {}
