package mockapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/snsclone-go/config"
	"github.com/user/snsclone-go/models"
)

func testConfig() *config.MockConfig {
	return &config.MockConfig{
		Port:                 "0",
		JWTSecret:            "test-secret",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(testConfig(), WithFastHashing()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signUp registers email and returns an access token for it.
func signUp(t *testing.T, base, email string) string {
	t.Helper()
	cred := models.Credential{Email: email, Password: "pass1234"}
	resp := doJSON(t, http.MethodPost, base+"/api/register/", "", cred)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, base+"/authen/jwt/create/", "", cred)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pair models.TokenPair
	decode(t, resp, &pair)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	return pair.Access
}

func createPost(t *testing.T, base, token, title string) models.Post {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	part, err := mw.CreateFormFile("img", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, base+"/api/post/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "JWT "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decode(t, resp, &post)
	return post
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv.URL, "a@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/register/", "", models.Credential{Email: "A@example.com", Password: "pass1234"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/authen/jwt/create/", "", models.Credential{Email: "a@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/register/", "", map[string]string{"email": "b@example.com"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/post/", "/api/comment/", "/api/profile/", "/api/myprofile/"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp = doJSON(t, http.MethodGet, srv.URL+path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRefreshTokenIsNotAccepted(t *testing.T) {
	srv := newTestServer(t)
	cred := models.Credential{Email: "a@example.com", Password: "pass1234"}
	doJSON(t, http.MethodPost, srv.URL+"/api/register/", "", cred)
	var pair models.TokenPair
	decode(t, doJSON(t, http.MethodPost, srv.URL+"/authen/jwt/create/", "", cred), &pair)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/post/", pair.Refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfiles(t *testing.T) {
	srv := newTestServer(t)
	alice := signUp(t, srv.URL, "alice@example.com")
	bob := signUp(t, srv.URL, "bob@example.com")

	var mine []models.Profile
	decode(t, doJSON(t, http.MethodGet, srv.URL+"/api/myprofile/", alice, nil), &mine)
	assert.Empty(t, mine)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/profile/", alice, models.NewProfile{Nickname: "anonymous"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Profile
	decode(t, resp, &created)
	assert.Equal(t, "anonymous", created.Nickname)
	assert.NotEmpty(t, created.CreatedOn)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/profile/", alice, models.NewProfile{Nickname: "again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	decode(t, doJSON(t, http.MethodGet, srv.URL+"/api/myprofile/", alice, nil), &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, created, mine[0])

	// Bob may not rename Alice.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("nickName", "hijacked"))
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/profile/"+itoa(created.ID)+"/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "JWT "+bob)
	forbidden, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
}

func TestUpdateProfileStoresAvatar(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv.URL, "a@example.com")
	var created models.Profile
	decode(t, doJSON(t, http.MethodPost, srv.URL+"/api/profile/", token, models.NewProfile{Nickname: "anonymous"}), &created)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("nickName", "neko"))
	part, err := mw.CreateFormFile("img", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("avatar-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/profile/"+itoa(created.ID)+"/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "JWT "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Profile
	decode(t, resp, &updated)
	assert.Equal(t, "neko", updated.Nickname)
	require.True(t, strings.HasSuffix(updated.ImageURL, "/media/avatars/me.png"), updated.ImageURL)

	media, err := http.Get(updated.ImageURL)
	require.NoError(t, err)
	defer media.Body.Close()
	assert.Equal(t, http.StatusOK, media.StatusCode)
}

func TestPostLikeUpdates(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv.URL, "a@example.com")
	post := createPost(t, srv.URL, token, "hello")
	assert.Equal(t, []int64{}, post.LikedBy)
	url := srv.URL + "/api/post/" + itoa(post.ID) + "/"

	t.Run("patch adds likes", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, url, token, map[string]interface{}{"liked": []int64{1, 2, 2}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.Post
		decode(t, resp, &got)
		assert.Equal(t, []int64{1, 2}, got.LikedBy)
		assert.Equal(t, "hello", got.Title)
	})

	t.Run("patch cannot empty the list", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, url, token, map[string]interface{}{"liked": []int64{}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("put requires title", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, url, token, map[string]interface{}{"liked": []int64{}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("put with title empties the list", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, url, token, map[string]interface{}{"title": "hello", "liked": []int64{}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.Post
		decode(t, resp, &got)
		assert.Empty(t, got.LikedBy)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, srv.URL+"/api/post/999/", token, map[string]interface{}{"liked": []int64{1}})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreatePostRequiresTitle(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv.URL, "a@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", " "))
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/post/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "JWT "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComments(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv.URL, "a@example.com")
	post := createPost(t, srv.URL, token, "hello")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/comment/", token, models.NewComment{Text: "nice", PostRef: post.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c models.Comment
	decode(t, resp, &c)
	assert.Equal(t, "nice", c.Text)
	assert.Equal(t, post.ID, c.PostRef)
	assert.NotZero(t, c.AuthorRef)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/comment/", token, models.NewComment{Text: "orphan", PostRef: 999})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/comment/", token, models.NewComment{Text: "", PostRef: post.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var all []models.Comment
	decode(t, doJSON(t, http.MethodGet, srv.URL+"/api/comment/", token, nil), &all)
	assert.Equal(t, []models.Comment{c}, all)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
