package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

// CreateProfile creates the caller's profile.
func (c *Client) CreateProfile(ctx context.Context, p models.NewProfile) (models.Profile, error) {
	var profile models.Profile
	err := c.doJSON(ctx, request{op: "create profile", method: http.MethodPost, path: pathProfile, auth: true}, p, &profile)
	return profile, err
}

// UpdateProfile replaces the nickname and, when u.Image is set, the avatar.
// The body is multipart because of the optional image.
func (c *Client) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (models.Profile, error) {
	body, contentType, err := multipartBody([]formField{{name: "nickName", value: u.Nickname}}, "img", u.Image)
	if err != nil {
		return models.Profile{}, apperror.NewInternalError("update profile: encode form", err)
	}
	var profile models.Profile
	err = c.do(ctx, request{
		op:          "update profile",
		method:      http.MethodPut,
		path:        fmt.Sprintf("%s%d/", pathProfile, u.ID),
		auth:        true,
		body:        body,
		contentType: contentType,
	}, &profile)
	return profile, err
}

// MyProfile fetches the caller's own profile. The endpoint answers with a
// single-element array; an empty array means the account has no profile yet and is
// reported as a NotFoundError. Bootstrap treats that like a rejected session and shows
// sign-in again.
func (c *Client) MyProfile(ctx context.Context) (models.Profile, error) {
	var profiles []models.Profile
	if err := c.doJSON(ctx, request{op: "get own profile", method: http.MethodGet, path: pathMyProfile, auth: true}, nil, &profiles); err != nil {
		return models.Profile{}, err
	}
	if len(profiles) == 0 {
		return models.Profile{}, apperror.NewNotFoundError("get own profile: no profile for this account", nil)
	}
	return profiles[0], nil
}

// ListProfiles fetches every known profile.
func (c *Client) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := c.doJSON(ctx, request{op: "list profiles", method: http.MethodGet, path: pathProfile, auth: true}, nil, &profiles)
	return profiles, err
}
