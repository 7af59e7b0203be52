// Package models defines the plain records exchanged with the backend and mirrored
// into client state. They carry no behavior beyond small accessors; JSON tags follow
// the backend's field names.
package models

// Credential is the login/registration payload. It is never stored.
type Credential struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// TokenPair is returned by session creation.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Account is the registration response. The client only uses it as a success signal.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Profile is a user's public identity record.
// OwnerRef correlates the profile with its account and with post/comment authorship.
type Profile struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickName"`
	OwnerRef  int64  `json:"userProfile"`
	CreatedOn string `json:"created_on"`
	ImageURL  string `json:"img"`
}

// Key returns the profile id, the identity used by keyed collections.
func (p Profile) Key() int64 { return p.ID }

// Post is a feed entry. LikedBy holds account references, each at most once.
type Post struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	AuthorRef int64   `json:"userPost"`
	CreatedOn string  `json:"created_on"`
	ImageURL  string  `json:"img"`
	LikedBy   []int64 `json:"liked"`
}

// Key returns the post id.
func (p Post) Key() int64 { return p.ID }

// LikedByAccount reports whether account is among the likers.
func (p Post) LikedByAccount(account int64) bool {
	for _, ref := range p.LikedBy {
		if ref == account {
			return true
		}
	}
	return false
}

// Comment belongs to exactly one post. The server enforces that PostRef exists.
type Comment struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	AuthorRef int64  `json:"userComment"`
	PostRef   int64  `json:"post"`
}

// Key returns the comment id.
func (c Comment) Key() int64 { return c.ID }

// Upload is an optional file attached to a multipart request (avatar or post image).
type Upload struct {
	Filename string
	Data     []byte
}

// NewPost is the input for post creation.
type NewPost struct {
	Title string  `validate:"required"`
	Image *Upload `validate:"required"`
}

// NewComment is the input for comment creation.
type NewComment struct {
	Text    string `json:"text" validate:"required"`
	PostRef int64  `json:"post" validate:"required,gt=0"`
}

// NewProfile is the input for profile creation.
type NewProfile struct {
	Nickname string `json:"nickName"`
}

// ProfileUpdate is the input for a profile update.
type ProfileUpdate struct {
	ID       int64   `validate:"gt=0"`
	Nickname string  `validate:"required"`
	Image    *Upload `validate:"omitempty"`
}

// LikeMode selects how a like-toggle is sent to the backend.
type LikeMode int

const (
	// LikePartial is a merge-style update (PATCH) carrying only the liked list.
	LikePartial LikeMode = iota
	// LikeFull is a full replace (PUT) that must also resend the title.
	LikeFull
)

// String implements fmt.Stringer.
func (m LikeMode) String() string {
	if m == LikeFull {
		return "full"
	}
	return "partial"
}

// LikeUpdate is the request built by the like-toggle algorithm.
type LikeUpdate struct {
	PostID  int64
	Mode    LikeMode
	LikedBy []int64
	Title   string // only sent when Mode == LikeFull
}
