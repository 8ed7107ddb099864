package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/llm"
	"parley/backend/internal/model"
)

// This file holds the request and response DTOs of the REST API together with
// the helpers every handler uses to write JSON, plain-text and SSE responses.

// Error codes of the unversioned gateway endpoints. Clients match on them.
const (
	codeUnableToProcess     = "UNABLE_TO_PROCESS_REQUEST"
	codeUnableToFetchModels = "UNABLE_TO_FETCH_MODELS"
	codeMissingQuery        = "Missing query!"
)

// Header overrides a caller may set to use its own upstream credentials.
const (
	headerCustomAPIKey  = "X-Custom-Api-Key"
	headerCustomBaseURL = "X-Custom-Base-Url"
)

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to send back.
type StatusResponse struct {
	Status string `json:"status"`
}

// ModelListResponse is the body of GET /api/models.
type ModelListResponse struct {
	Data []llm.ModelDescriptor `json:"data"`
}

// CreateSessionRequest opens a new session, optionally seeded from a mask.
type CreateSessionRequest struct {
	Title  string `json:"title" validate:"omitempty,max=100" example:"Trip planning"`
	MaskID string `json:"mask_id,omitempty" example:"builtin-translator"`
}

// UpdateTitleRequest renames a session by hand.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100" example:"My Custom Chat Title"`
}

// UpdateInputRequest stores the unsent draft of a session. An empty input clears it.
type UpdateInputRequest struct {
	Input string `json:"input"`
}

// AssignMaskRequest names the mask a session should start from.
type AssignMaskRequest struct {
	MaskID string `json:"mask_id" validate:"required"`
}

// SendMessageRequest is the body of the streaming message endpoint.
type SendMessageRequest struct {
	Content  string `json:"content" validate:"required" example:"What is pho?"`
	Language string `json:"language,omitempty" example:"en"`
}

// RegenerateRequest is the optional body of the regenerate endpoint.
type RegenerateRequest struct {
	Language string `json:"language,omitempty" example:"en"`
}

// EditMessageRequest replaces the content of one message.
type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SessionList is the body of GET /sessions.
type SessionList struct {
	Sessions []model.ChatSession `json:"sessions"`
}

// MaskList is the body of GET /masks.
type MaskList struct {
	Masks []model.Mask `json:"masks"`
}

// respondWithError maps business-layer sentinel errors to HTTP status codes
// and writes a standard JSON error body.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are written for the client already.
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A reply is already streaming in this session."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "The upstream model provider returned an error."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithCode writes one of the fixed gateway error codes.
func respondWithCode(w http.ResponseWriter, statusCode int, code string, err error) {
	slog.Warn("Gateway request failed", "status_code", statusCode, "code", code, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: code})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// respondWithText writes a plain-text body.
func respondWithText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("Failed to write text response", "error", err)
	}
}

func setStreamHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// sendStreamError writes an `event: error` SSE event so clients can attach a
// dedicated listener for failures.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)

	jsonData, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		// Usually the client closed the connection.
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}
	flush(w)
}

// writeStreamEvent writes one SSE data event. A returned error means the
// client is gone.
func writeStreamEvent(w http.ResponseWriter, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		// The connection is still fine; only this event is dropped.
		return nil
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	flush(w)
	return nil
}

func flush(w http.ResponseWriter) {
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
