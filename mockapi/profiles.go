package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

// maxUploadSize bounds multipart bodies (images plus form fields).
const maxUploadSize = 10 << 20

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	owner, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NewAuthError("account not found in context", nil))
		return
	}

	var req models.NewProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	if strings.TrimSpace(req.Nickname) == "" {
		writeError(w, apperror.NewBadRequestError("nickName is required", nil))
		return
	}

	profile, err := s.store.createProfile(owner, req.Nickname)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NewAuthError("account not found in context", nil))
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, apperror.NewBadRequestError("expected multipart form: "+err.Error(), nil))
		return
	}

	nickname := r.FormValue("nickName")
	if strings.TrimSpace(nickname) == "" {
		writeError(w, apperror.NewBadRequestError("nickName is required", nil))
		return
	}
	imageURL, err := s.saveUpload(r, "img", "avatars")
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.store.updateProfile(owner, id, nickname, imageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NewAuthError("account not found in context", nil))
		return
	}
	writeJSON(w, http.StatusOK, s.store.profilesOf(owner))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listProfiles())
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.getMedia(chi.URLParam(r, "*"))
	if !ok {
		writeError(w, apperror.NewNotFoundError("media not found", nil))
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(m.Data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(m.Data)
}

// saveUpload stores the optional file part `field` and returns its absolute URL,
// or "" when the part is absent.
func (s *Server) saveUpload(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperror.NewBadRequestError("invalid file part: "+err.Error(), nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", apperror.NewBadRequestError("failed to read upload", err)
	}
	key := s.store.putMedia(dir, header.Filename, data)
	return fmt.Sprintf("http://%s/media/%s", r.Host, key), nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFoundError("invalid id", nil)
	}
	return id, nil
}
