package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
)

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listComments())
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	author, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NewAuthError("account not found in context", nil))
		return
	}

	var req models.NewComment
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields() // error if extra fields are sent
	if err := decoder.Decode(&req); err != nil {
		writeError(w, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, apperror.NewBadRequestError("text is required", nil))
		return
	}

	comment, err := s.store.createComment(author, req.PostRef, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
