package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/user/snsclone-go/models"
)

func apply(s State, msgs ...Msg) State {
	for _, m := range msgs {
		s = Reduce(s, m)
	}
	return s
}

func TestSetOwnNicknameTouchesOnlyNickname(t *testing.T) {
	me := models.Profile{ID: 4, Nickname: "old", OwnerRef: 9, CreatedOn: "2021-01-01", ImageURL: "/media/a.png"}
	s := apply(Initial(), OwnProfileFetched{Profile: me})

	for _, nick := range []string{"new", "", "日本語", "new"} {
		s = Reduce(s, SetOwnNickname{Text: nick})
		want := me
		want.Nickname = nick
		assert.Equal(t, want, s.Session.Me)
	}
}

func TestProfilesFetchedIsIdempotent(t *testing.T) {
	roster := []models.Profile{{ID: 1, Nickname: "a"}, {ID: 2, Nickname: "b"}}

	once := Reduce(Initial(), ProfilesFetched{Profiles: roster})
	twice := Reduce(once, ProfilesFetched{Profiles: roster})

	if diff := cmp.Diff(once.Session.Profiles.Items(), twice.Session.Profiles.Items()); diff != "" {
		t.Errorf("roster changed on second replace (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(roster, twice.Session.Profiles.Items()); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileUpdatedReplacesMatchingEntryOnly(t *testing.T) {
	s := apply(Initial(),
		OwnProfileFetched{Profile: models.Profile{ID: 2, Nickname: "me", OwnerRef: 7}},
		ProfilesFetched{Profiles: []models.Profile{
			{ID: 1, Nickname: "other", OwnerRef: 3},
			{ID: 2, Nickname: "me", OwnerRef: 7},
		}},
	)

	updated := models.Profile{ID: 2, Nickname: "renamed", OwnerRef: 7, ImageURL: "/media/new.png"}
	s = Reduce(s, ProfileUpdated{Profile: updated})

	assert.Equal(t, updated, s.Session.Me)
	want := []models.Profile{
		{ID: 1, Nickname: "other", OwnerRef: 3},
		updated,
	}
	if diff := cmp.Diff(want, s.Session.Profiles.Items()); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileUpdatedWithUnknownIDDoesNotAppend(t *testing.T) {
	s := apply(Initial(), ProfilesFetched{Profiles: []models.Profile{{ID: 1}}})

	s = Reduce(s, ProfileUpdated{Profile: models.Profile{ID: 5, Nickname: "x"}})

	assert.Equal(t, 1, s.Session.Profiles.Len())
	assert.Equal(t, "x", s.Session.Me.Nickname)
}

func TestPostCreatedAppends(t *testing.T) {
	s := apply(Initial(),
		PostsFetched{Posts: []models.Post{{ID: 1}}},
		PostCreated{Post: models.Post{ID: 2}},
	)

	want := []models.Post{{ID: 1}, {ID: 2}}
	if diff := cmp.Diff(want, s.Feed.Posts.Items()); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentsFetchAndCreate(t *testing.T) {
	s := apply(Initial(),
		CommentsFetched{Comments: []models.Comment{{ID: 1, PostRef: 5}}},
		CommentCreated{Comment: models.Comment{ID: 2, PostRef: 5, Text: "hi"}},
	)

	want := []models.Comment{{ID: 1, PostRef: 5}, {ID: 2, PostRef: 5, Text: "hi"}}
	if diff := cmp.Diff(want, s.Feed.Comments.Items()); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}

	s = Reduce(s, CommentsFetched{Comments: nil})
	assert.Equal(t, 0, s.Feed.Comments.Len(), "fetch replaces wholesale")
}

func TestLikeToggledReplacesByID(t *testing.T) {
	s := apply(Initial(), PostsFetched{Posts: []models.Post{
		{ID: 4, Title: "a"},
		{ID: 5, Title: "x", LikedBy: []int64{3}},
		{ID: 6, Title: "c"},
	}})

	s = Reduce(s, LikeToggled{Post: models.Post{ID: 5, Title: "x", LikedBy: []int64{3, 9}}})

	want := []models.Post{
		{ID: 4, Title: "a"},
		{ID: 5, Title: "x", LikedBy: []int64{3, 9}},
		{ID: 6, Title: "c"},
	}
	if diff := cmp.Diff(want, s.Feed.Posts.Items()); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadingFlags(t *testing.T) {
	s := Initial()
	assert.False(t, s.Loading())

	s = Reduce(s, BeginAuthRequest{})
	assert.True(t, s.Session.AuthLoading)
	assert.True(t, s.Loading())
	s = Reduce(s, EndAuthRequest{})
	assert.False(t, s.Session.AuthLoading)

	s = Reduce(s, BeginPostRequest{})
	assert.True(t, s.Feed.PostLoading)
	s = Reduce(s, EndPostRequest{})
	assert.False(t, s.Loading())
}

func TestOverlayIsExclusive(t *testing.T) {
	s := Initial()
	assert.Equal(t, OverlaySignIn, s.Overlay)

	s = Reduce(s, ShowSignUp{})
	assert.Equal(t, OverlaySignUp, s.Overlay, "showing one view replaces the other")

	s = Reduce(s, HideSignIn{})
	assert.Equal(t, OverlaySignUp, s.Overlay, "hiding a view that is not showing is a no-op")

	s = Reduce(s, HideSignUp{})
	assert.Equal(t, OverlayNone, s.Overlay)

	s = apply(s, ShowComposer{}, ShowProfileEditor{})
	assert.Equal(t, OverlayProfileEditor, s.Overlay)
	s = Reduce(s, HideComposer{})
	assert.Equal(t, OverlayProfileEditor, s.Overlay)
	s = Reduce(s, HideProfileEditor{})
	assert.Equal(t, OverlayNone, s.Overlay)
}

func TestSignedOut(t *testing.T) {
	s := apply(Initial(),
		HideSignIn{},
		OwnProfileFetched{Profile: models.Profile{ID: 1, Nickname: "me"}},
		ShowComposer{},
	)
	assert.True(t, s.SignedIn())

	s = Reduce(s, SignedOut{})

	assert.False(t, s.SignedIn())
	assert.Equal(t, models.Profile{}, s.Session.Me)
	assert.Equal(t, OverlaySignIn, s.Overlay)
}
