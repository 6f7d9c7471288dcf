package api

import (
	"net/http"
)

type createFolderRequest struct {
	Name string `json:"name"`
}

// handleCreateFolder creates a folder for the caller
func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	folder, err := s.folderSvc.Create(r.Context(), userIDFrom(r), req.Name)
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, folder)
}

// handleListFolders returns the caller's folders
func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folderSvc.List(r.Context(), userIDFrom(r))
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, folders)
}
