package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/validation"
)

type tagBody struct {
	Message string      `json:"message,omitempty"`
	Tag     *models.Tag `json:"tag"`
}

func (s *HTTPServer) handleTagList(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	tags, err := s.tags.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tags == nil {
		tags = []*models.Tag{}
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Tag{"tags": tags})
}

func (s *HTTPServer) handleTagGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	tag, err := s.tags.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tagBody{Tag: tag})
}

func (s *HTTPServer) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req validation.CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	tag, err := s.tags.Create(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tagBody{Message: "Tag created successfully", Tag: tag})
}

func (s *HTTPServer) handleTagUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req validation.UpdateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	tag, err := s.tags.Update(r.Context(), userID, r.PathValue("id"), req.Name, req.Color)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tagBody{Message: "Tag updated successfully", Tag: tag})
}

func (s *HTTPServer) handleTagDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := s.tags.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Tag deleted successfully"})
}
