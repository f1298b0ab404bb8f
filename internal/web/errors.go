package web

// errors.go provides unified error response handling for the web layer.
// Technical details are logged server-side with the request ID; the client
// gets a short JSON message.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ventmash/fancatalog/internal/logging"
	"github.com/ventmash/fancatalog/internal/store"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error and writes a JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	logger := logging.FromContext(r.Context())
	if statusCode >= 500 {
		logger.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", statusCode,
			"error", err.Error(),
		)
	} else {
		logger.Debug("request rejected",
			"path", r.URL.Path,
			"status", statusCode,
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: userMessage(err, statusCode)})
}

// userMessage maps an error to a client-facing message. Internal errors are
// not echoed back.
func userMessage(err error, statusCode int) string {
	if errors.Is(err, store.ErrNotFound) {
		return "Product not found"
	}
	if statusCode >= 500 {
		return "internal server error"
	}
	return err.Error()
}
