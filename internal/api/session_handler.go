package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/interfaces"
	"parley/backend/internal/model"
)

const defaultSessionTitle = "New chat"

// SessionHandler serves the session and message REST resources. Streaming
// lives in ChatHandler.
type SessionHandler struct {
	sessions interfaces.SessionStore
	config   interfaces.ConfigStore
	masks    interfaces.MaskCatalog
}

func NewSessionHandler(sessions interfaces.SessionStore, config interfaces.ConfigStore, masks interfaces.MaskCatalog) *SessionHandler {
	return &SessionHandler{sessions: sessions, config: config, masks: masks}
}

// ListSessions godoc
// @Summary      List sessions
// @Description  Returns every session, the most recently created first.
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  SessionList
// @Router       /v1/sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, SessionList{Sessions: h.sessions.ListSessions()})
}

// CreateSession godoc
// @Summary      Create a session
// @Description  Opens a session seeded with the current default settings and, optionally, a mask.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        session  body      CreateSessionRequest  false  "Title and mask"
// @Success      201      {object}  model.ChatSession
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeRequest(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}

	var mask *model.Mask
	if req.MaskID != "" {
		m, err := h.masks.Get(req.MaskID)
		if err != nil {
			respondWithError(w, err)
			return
		}
		mask = m
	}

	title := req.Title
	if title == "" && mask != nil {
		title = mask.Title
	}
	if title == "" {
		title = defaultSessionTitle
	}

	session := h.sessions.CreateSession(title)
	if mask != nil {
		h.sessions.AssignMask(session.ID, mask)
		session, _ = h.sessions.GetSession(session.ID)
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// GetSession godoc
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.ChatSession
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary      Delete a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  StatusResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.sessions.RemoveSession(session.ID)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearSessions godoc
// @Summary      Delete every session
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/sessions [delete]
func (h *SessionHandler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear()
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// UpdateTitle godoc
// @Summary      Rename a session
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        title      body      UpdateTitleRequest  true  "New title"
// @Success      200        {object}  model.ChatSession
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/title [put]
func (h *SessionHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	h.mutate(w, r, &req, func(id string) {
		h.sessions.UpdateTitle(id, req.Title)
	})
}

// UpdateSettings godoc
// @Summary      Update session settings
// @Description  Merges the given fields into the session's generation settings.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        settings   body      model.SettingsPatch  true  "Fields to change"
// @Success      200        {object}  model.ChatSession
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/settings [patch]
func (h *SessionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	h.mutate(w, r, &patch, func(id string) {
		h.sessions.UpdateSettings(id, patch)
	})
}

// UpdateInput godoc
// @Summary      Save the draft
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        input      body      UpdateInputRequest  true  "Draft text"
// @Success      200        {object}  model.ChatSession
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/input [put]
func (h *SessionHandler) UpdateInput(w http.ResponseWriter, r *http.Request) {
	var req UpdateInputRequest
	h.mutate(w, r, &req, func(id string) {
		h.sessions.UpdateInput(id, req.Input)
	})
}

// AssignMask godoc
// @Summary      Apply a mask
// @Description  Replaces the messages of a session with the mask's seed messages. Only the first mask a session receives is applied.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string             true  "Session ID"
// @Param        mask       body      AssignMaskRequest  true  "Mask ID"
// @Success      200        {object}  model.ChatSession
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/mask [post]
func (h *SessionHandler) AssignMask(w http.ResponseWriter, r *http.Request) {
	var req AssignMaskRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	mask, err := h.masks.Get(req.MaskID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.mutate(w, r, nil, func(id string) {
		h.sessions.AssignMask(id, mask)
	})
}

// ClearHistory godoc
// @Summary      Clear the history
// @Description  Drops every message except system and pinned ones and resets the summary.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.ChatSession
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/clear [post]
func (h *SessionHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, nil, func(id string) {
		h.sessions.ClearHistory(id)
	})
}

// ListMessages godoc
// @Summary      Page through messages
// @Description  Returns the window [end, end+size) of the session's messages, newest first. size defaults to the configured pagination size.
// @Tags         Messages
// @Produce      json
// @Param        sessionID  path      string  true   "Session ID"
// @Param        end        query     int     false  "Messages to skip from the newest"
// @Param        size       query     int     false  "Page size"
// @Success      200        {object}  store.MessagePage
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [get]
func (h *SessionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	end, err := queryInt(r, "end", 0)
	if err != nil {
		respondWithError(w, err)
		return
	}
	size, err := queryInt(r, "size", h.config.Get().PaginationSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if end < 0 || size < 1 {
		respondWithError(w, fmt.Errorf("%w: end must be >= 0 and size >= 1", app_errors.ErrValidation))
		return
	}

	page, ok := h.sessions.PageMessages(chi.URLParam(r, "sessionID"), end, size)
	if !ok {
		respondWithError(w, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, chi.URLParam(r, "sessionID")))
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// EditMessage godoc
// @Summary      Edit a message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        messageID  path      string              true  "Message ID"
// @Param        message    body      EditMessageRequest  true  "New content"
// @Success      200        {object}  model.ChatMessage
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages/{messageID} [put]
func (h *SessionHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req EditMessageRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	h.mutateMessage(w, r, func(id, messageID string) {
		h.sessions.EditMessage(id, messageID, req.Content)
	})
}

// PinMessage godoc
// @Summary      Toggle the pin of a message
// @Description  Pinned messages survive a history clear.
// @Tags         Messages
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        messageID  path      string  true  "Message ID"
// @Success      200        {object}  model.ChatMessage
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages/{messageID}/pin [post]
func (h *SessionHandler) PinMessage(w http.ResponseWriter, r *http.Request) {
	h.mutateMessage(w, r, func(id, messageID string) {
		h.sessions.PinMessage(id, messageID)
	})
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Tags         Messages
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        messageID  path      string  true  "Message ID"
// @Success      200        {object}  StatusResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages/{messageID} [delete]
func (h *SessionHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	messageID := chi.URLParam(r, "messageID")
	if session.FindMessage(messageID) < 0 {
		respondWithError(w, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID))
		return
	}
	h.sessions.RemoveMessage(session.ID, messageID)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *SessionHandler) session(r *http.Request) (model.ChatSession, error) {
	id := chi.URLParam(r, "sessionID")
	session, ok := h.sessions.GetSession(id)
	if !ok {
		return model.ChatSession{}, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, id)
	}
	return session, nil
}

// mutate decodes an optional body, checks the session exists, applies fn and
// responds with the updated session.
func (h *SessionHandler) mutate(w http.ResponseWriter, r *http.Request, body interface{}, fn func(id string)) {
	if body != nil {
		if err := decodeRequest(r, body, false); err != nil {
			respondWithError(w, err)
			return
		}
	}
	session, err := h.session(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	fn(session.ID)
	updated, _ := h.sessions.GetSession(session.ID)
	respondWithJSON(w, http.StatusOK, updated)
}

// mutateMessage checks both ids, applies fn and responds with the message.
func (h *SessionHandler) mutateMessage(w http.ResponseWriter, r *http.Request, fn func(id, messageID string)) {
	session, err := h.session(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	messageID := chi.URLParam(r, "messageID")
	if session.FindMessage(messageID) < 0 {
		respondWithError(w, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID))
		return
	}

	fn(session.ID, messageID)
	updated, _ := h.sessions.GetSession(session.ID)
	respondWithJSON(w, http.StatusOK, updated.Messages[updated.FindMessage(messageID)])
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %q must be an integer", app_errors.ErrValidation, key)
	}
	return v, nil
}
