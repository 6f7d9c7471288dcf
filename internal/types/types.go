// Package types provides core type definitions shared across the QR tracker system.
package types

// ContentType represents the declared kind of content bound to a QR code
type ContentType string

const (
	// ContentURL is content that should be redirected to when scanned
	ContentURL ContentType = "url"
	// ContentText is free-form text rendered inline on scan
	ContentText ContentType = "text"
	// ContentEmail is an email address rendered inline on scan
	ContentEmail ContentType = "email"
	// ContentPhone is a phone number rendered inline on scan
	ContentPhone ContentType = "phone"
)

// Valid reports whether the content type is one of the four allowed values
func (t ContentType) Valid() bool {
	switch t {
	case ContentURL, ContentText, ContentEmail, ContentPhone:
		return true
	default:
		return false
	}
}

// AllContentTypes lists the allowed content type values, for error details
func AllContentTypes() []string {
	return []string{
		string(ContentURL),
		string(ContentText),
		string(ContentEmail),
		string(ContentPhone),
	}
}

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}
