package api

import (
	"fmt"
	"html"
	"net/http"

	"github.com/qr-tracker/internal/service"
)

// scanPageHTML renders non-URL content back to the scanning device. The
// content placeholder must be HTML-escaped before substitution.
const scanPageHTML = `<!DOCTYPE html>
<html>
<head><title>QR Code</title></head>
<body>
<h1>QR Code Content</h1>
<p>%s</p>
</body>
</html>
`

// handleScan is the public endpoint printed QR codes resolve to. It is
// unauthenticated: anyone scanning a code lands here. Every valid hit
// records exactly one scan event before the response is decided.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "QR code not found", nil)
		return
	}

	// Device and location attribution come from transport headers. The
	// service substitutes the unknown placeholders when these are empty.
	location := ""
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		location = "IP: " + xff
	}

	res, err := s.scanSvc.Resolve(r.Context(), &service.ResolveInput{
		QRID:     id,
		Content:  r.URL.Query().Get("content"),
		Device:   r.UserAgent(),
		Location: location,
	})
	if err != nil {
		statusCode, code, message := mapServiceError(err)
		respondError(w, statusCode, code, message, nil)
		return
	}

	if res.Redirect {
		http.Redirect(w, r, res.RedirectURL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, scanPageHTML, html.EscapeString(res.Content))
}
