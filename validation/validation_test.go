package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

func TestCredential(t *testing.T) {
	require.NoError(t, Credential(models.Credential{Email: "a@example.com", Password: "hunter2"}))

	err := Credential(models.Credential{Email: "not-an-email", Password: "abc"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Contains(t, err.Error(), "email format is wrong")
	assert.Contains(t, err.Error(), "password must be at least 4 characters")

	err = Credential(models.Credential{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
}

func TestNewPost(t *testing.T) {
	img := &models.Upload{Filename: "cat.png", Data: []byte{0x89, 'P', 'N', 'G'}}

	require.NoError(t, NewPost(models.NewPost{Title: "cat", Image: img}))

	err := NewPost(models.NewPost{Title: "cat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image is required")

	err = NewPost(models.NewPost{Image: img})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")

	err = NewPost(models.NewPost{Title: "cat", Image: &models.Upload{Filename: "empty.png"}})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestNewComment(t *testing.T) {
	require.NoError(t, NewComment(models.NewComment{Text: "nice", PostRef: 3}))
	assert.Error(t, NewComment(models.NewComment{Text: "", PostRef: 3}))
	assert.Error(t, NewComment(models.NewComment{Text: "nice"}))
}

func TestProfileUpdate(t *testing.T) {
	require.NoError(t, ProfileUpdate(models.ProfileUpdate{ID: 1, Nickname: "kate"}))

	err := ProfileUpdate(models.ProfileUpdate{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nickname is required")
}
