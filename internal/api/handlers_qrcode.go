package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/qr-tracker/internal/service"
	"github.com/qr-tracker/internal/types"
)

type createQRCodeRequest struct {
	Content  string            `json:"content"`
	Type     types.ContentType `json:"type"`
	Logo     *string           `json:"logo"`
	FolderID *int64            `json:"folderId"`
}

type updateQRCodeRequest struct {
	Content  *string            `json:"content"`
	Type     *types.ContentType `json:"type"`
	Logo     *string            `json:"logo"`
	FolderID *int64             `json:"folderId"`
}

type moveQRCodeRequest struct {
	// FolderID null (or absent) clears the folder assignment
	FolderID *int64 `json:"folderId"`
}

// parseIDParam extracts the numeric {id} path variable
func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleCreateQRCode creates a QR code for the caller
func (s *Server) handleCreateQRCode(w http.ResponseWriter, r *http.Request) {
	var req createQRCodeRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	qr, err := s.qrSvc.Create(r.Context(), &service.CreateQRCodeInput{
		UserID:   userIDFrom(r),
		Content:  req.Content,
		Type:     req.Type,
		Logo:     req.Logo,
		FolderID: req.FolderID,
	})
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusCreated, qr)
}

// handleListQRCodes returns the caller's QR codes
func (s *Server) handleListQRCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := s.qrSvc.List(r.Context(), userIDFrom(r))
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, codes)
}

// handleGetQRCode returns one owned QR code
func (s *Server) handleGetQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	qr, err := s.qrSvc.Get(r.Context(), id, userIDFrom(r))
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, qr)
}

// handleUpdateQRCode applies a partial edit to an owned QR code
func (s *Server) handleUpdateQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	var req updateQRCodeRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	qr, err := s.qrSvc.Update(r.Context(), id, userIDFrom(r), &service.UpdateQRCodeInput{
		Content:  req.Content,
		Type:     req.Type,
		Logo:     req.Logo,
		FolderID: req.FolderID,
	})
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, qr)
}

// handleMoveQRCode assigns an owned QR code to a folder or clears it
func (s *Server) handleMoveQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	var req moveQRCodeRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	qr, err := s.qrSvc.MoveToFolder(r.Context(), id, userIDFrom(r), req.FolderID)
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, qr)
}

// handleDeleteQRCode deletes an owned QR code; its scan history remains
func (s *Server) handleDeleteQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	if err := s.qrSvc.Delete(r.Context(), id, userIDFrom(r)); err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListScans returns the ordered scan history of an owned QR code
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	scans, err := s.statsSvc.GetScans(r.Context(), id, userIDFrom(r))
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, scans)
}

// handleScanSummary returns aggregated scan analytics for an owned QR code
func (s *Server) handleScanSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	summary, err := s.statsSvc.GetSummary(r.Context(), id, userIDFrom(r))
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
