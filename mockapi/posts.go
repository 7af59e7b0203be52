package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/user/snsclone-go/apperror"
)

// postUpdateRequest covers both PUT and PATCH bodies. Pointers tell "absent" apart
// from "empty".
type postUpdateRequest struct {
	Title *string  `json:"title"`
	Liked *[]int64 `json:"liked"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listPosts())
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	author, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NewAuthError("account not found in context", nil))
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, apperror.NewBadRequestError("expected multipart form: "+err.Error(), nil))
		return
	}

	title := r.FormValue("title")
	if strings.TrimSpace(title) == "" {
		writeError(w, apperror.NewBadRequestError("title is required", nil))
		return
	}
	imageURL, err := s.saveUpload(r, "img", "posts")
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.store.createPost(author, title, imageURL))
}

// handleReplacePost is the full update (PUT). A full update requires the title.
func (s *Server) handleReplacePost(w http.ResponseWriter, r *http.Request) {
	req, id, ok := s.decodePostUpdate(w, r)
	if !ok {
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, apperror.NewBadRequestError("title is required for a full update", nil))
		return
	}
	liked := []int64{}
	if req.Liked != nil {
		liked = *req.Liked
	}

	post, err := s.store.updatePost(id, req.Title, liked)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handlePatchPost is the partial update (PATCH). The backend cannot clear the liked
// relation through a partial update; clients must send a full update instead.
func (s *Server) handlePatchPost(w http.ResponseWriter, r *http.Request) {
	req, id, ok := s.decodePostUpdate(w, r)
	if !ok {
		return
	}
	var liked []int64
	if req.Liked != nil {
		if len(*req.Liked) == 0 {
			writeError(w, apperror.NewBadRequestError("liked cannot be emptied by a partial update", nil))
			return
		}
		liked = *req.Liked
	}

	post, err := s.store.updatePost(id, req.Title, liked)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) decodePostUpdate(w http.ResponseWriter, r *http.Request) (postUpdateRequest, int64, bool) {
	defer r.Body.Close()
	var req postUpdateRequest

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return req, 0, false
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return req, 0, false
	}
	return req, id, true
}
