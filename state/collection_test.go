package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/user/snsclone-go/models"
)

func TestNewCollectionDeduplicates(t *testing.T) {
	c := NewCollection(
		models.Post{ID: 1, Title: "a"},
		models.Post{ID: 2, Title: "b"},
		models.Post{ID: 1, Title: "a2"},
	)

	want := []models.Post{{ID: 1, Title: "a2"}, {ID: 2, Title: "b"}}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionIsCopyOnWrite(t *testing.T) {
	base := NewCollection(models.Comment{ID: 1, Text: "first"})

	appended := base.Append(models.Comment{ID: 2, Text: "second"})
	replaced, ok := base.Replace(models.Comment{ID: 1, Text: "edited"})

	assert.True(t, ok)
	assert.Equal(t, 1, base.Len())
	got, _ := base.Get(1)
	assert.Equal(t, "first", got.Text, "receiver must not change")
	assert.Equal(t, 2, appended.Len())
	got, _ = replaced.Get(1)
	assert.Equal(t, "edited", got.Text)
}

func TestCollectionReplaceNeverAppends(t *testing.T) {
	base := NewCollection(models.Profile{ID: 1})

	next, ok := base.Replace(models.Profile{ID: 9, Nickname: "ghost"})

	assert.False(t, ok)
	assert.Equal(t, 1, next.Len())
	_, found := next.Get(9)
	assert.False(t, found)
}

func TestCollectionAppendExistingIDSubstitutesInPlace(t *testing.T) {
	c := NewCollection(models.Post{ID: 1}, models.Post{ID: 2}).
		Append(models.Post{ID: 1, Title: "again"})

	want := []models.Post{{ID: 1, Title: "again"}, {ID: 2}}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroCollection(t *testing.T) {
	var c Collection[models.Post]

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Items())
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Replace(models.Post{ID: 1})
	assert.False(t, ok)
	assert.Equal(t, 1, c.Append(models.Post{ID: 1}).Len())
}
