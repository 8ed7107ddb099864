package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parley/backend/internal/interfaces"
	"parley/backend/internal/model"
	"parley/backend/internal/service"
)

// ChatHandler serves the streaming side of a session: sending a message,
// regenerating a reply and stopping the active run.
type ChatHandler struct {
	orchestrator interfaces.ChatOrchestrator
}

func NewChatHandler(orchestrator interfaces.ChatOrchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// HandleSendMessage godoc
// @Summary      Send a message and stream the reply
// @Description  Appends the user message and streams the assistant reply as SSE events. The last event has done=true and the final run state.
// @Tags         Messages
// @Accept       json
// @Produce      text/event-stream
// @Param        sessionID  path      string              true  "Session ID"
// @Param        message    body      SendMessageRequest  true  "Message"
// @Success      200        {object}  model.StreamResponse  "Stream of reply chunks"
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	sink := make(chan model.StreamResponse)
	run, err := h.orchestrator.Submit(r.Context(), chi.URLParam(r, "sessionID"), req.Content, service.SubmitOptions{Language: req.Language}, sink)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.stream(w, r, run, sink)
}

// HandleRegenerateMessage godoc
// @Summary      Regenerate a reply
// @Description  Drops the message and everything after it, re-sends the preceding user message and streams a fresh reply.
// @Tags         Messages
// @Accept       json
// @Produce      text/event-stream
// @Param        sessionID  path      string             true   "Session ID"
// @Param        messageID  path      string             true   "Message ID"
// @Param        options    body      RegenerateRequest  false  "Options"
// @Success      200        {object}  model.StreamResponse  "Stream of reply chunks"
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages/{messageID}/regenerate [post]
func (h *ChatHandler) HandleRegenerateMessage(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := decodeRequest(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}

	sink := make(chan model.StreamResponse)
	run, err := h.orchestrator.Regenerate(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "messageID"), service.SubmitOptions{Language: req.Language}, sink)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.stream(w, r, run, sink)
}

// HandleStop godoc
// @Summary      Stop the active reply
// @Description  Cancels the session's streaming run. Text received so far is kept.
// @Tags         Messages
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  StatusResponse  "stopped, or idle when nothing was running"
// @Router       /v1/sessions/{sessionID}/stop [post]
func (h *ChatHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	status := "idle"
	if h.orchestrator.Stop(chi.URLParam(r, "sessionID")) {
		status = "stopped"
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: status})
}

// stream relays run events as SSE. A client that goes away stops the run, and
// the sink is drained to the end either way so the run can finish.
func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, run *service.Run, sink <-chan model.StreamResponse) {
	setStreamHeaders(w, "text/event-stream")
	w.WriteHeader(http.StatusOK)
	flush(w)

	gone := r.Context().Done()
	connected := true
	disconnect := func() {
		slog.Info("Client disconnected, stopping run", "session_id", run.SessionID, "run_id", run.ID)
		run.Stop()
		connected = false
		gone = nil
	}
	for {
		select {
		case <-gone:
			// A stalled upstream sends nothing, so this is the only place a
			// disconnect would be seen.
			disconnect()
		case ev, ok := <-sink:
			if !ok {
				slog.Info("Finished streaming response", "session_id", run.SessionID, "run_id", run.ID)
				return
			}
			if !connected {
				continue
			}
			if r.Context().Err() != nil {
				disconnect()
				continue
			}
			if err := writeStreamEvent(w, ev); err != nil {
				slog.Warn("Could not write to message stream, client likely disconnected", "run_id", run.ID, "error", err)
				run.Stop()
				connected = false
				continue
			}
			if ev.Done && ev.Error != "" {
				sendStreamError(w, ev.Error)
			}
		}
	}
}
