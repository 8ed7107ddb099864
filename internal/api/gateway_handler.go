package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/interfaces"
	"parley/backend/internal/llm"
	"parley/backend/internal/service"
)

// GatewayHandler exposes the raw completion and search endpoints. Replies are
// plain text, streamed in chunks when the caller asks for it.
type GatewayHandler struct {
	gateway interfaces.Gateway
	search  interfaces.SearchService
}

func NewGatewayHandler(gateway interfaces.Gateway, search interfaces.SearchService) *GatewayHandler {
	return &GatewayHandler{gateway: gateway, search: search}
}

// HandleChat godoc
// @Summary      Proxy a completion
// @Description  Prepends the assistant persona and forwards the messages upstream. With stream=true the reply body is chunked plain text.
// @Tags         Gateway
// @Accept       json
// @Produce      plain
// @Param        X-Custom-Api-Key   header    string                 false  "Upstream API key"
// @Param        X-Custom-Base-Url  header    string                 false  "Upstream base URL"
// @Param        request            body      llm.CompletionRequest  true   "Completion request"
// @Success      200                {string}  string                 "Completion text"
// @Failure      400                {object}  ErrorResponse
// @Failure      502                {object}  ErrorResponse
// @Router       /chat [post]
func (h *GatewayHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req llm.CompletionRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	req.APIKey = r.Header.Get(headerCustomAPIKey)
	req.BaseURL = r.Header.Get(headerCustomBaseURL)

	if !req.Stream {
		text, err := h.gateway.Complete(r.Context(), &req)
		if err != nil {
			h.fail(w, err)
			return
		}
		respondWithText(w, http.StatusOK, text)
		return
	}

	stream, err := h.gateway.Stream(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer func() { _ = stream.Close() }()

	// Upstream failures usually surface on the first read, while a status
	// code can still be sent.
	chunk, err := stream.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, err)
		return
	}

	setStreamHeaders(w, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	for err == nil {
		if _, werr := io.WriteString(w, chunk); werr != nil {
			slog.Info("Client disconnected from completion stream", "error", werr)
			return
		}
		flush(w)
		chunk, err = stream.Recv()
	}
	if !errors.Is(err, io.EOF) {
		// Headers are gone already; a cut-off body is all the client can see.
		slog.Warn("Upstream stream failed mid-response", "model", req.Model, "error", err)
	}
}

// HandleSearch godoc
// @Summary      Answer a question from web search
// @Description  Fetches search snippets, writes a cited answer and suggests follow-up questions. The body is the sources JSON, the __LLM_RESPONSE__ separator, the answer, the __RELATED_QUESTIONS__ separator and the questions JSON.
// @Tags         Gateway
// @Accept       json
// @Produce      plain
// @Param        X-Custom-Api-Key   header    string                 false  "Upstream API key"
// @Param        X-Custom-Base-Url  header    string                 false  "Upstream base URL"
// @Param        request            body      service.SearchRequest  true   "Query and language"
// @Success      200                {string}  string                 "Composite payload"
// @Failure      400                {object}  ErrorResponse
// @Failure      502                {object}  ErrorResponse
// @Router       /search [post]
func (h *GatewayHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := decodeRequest(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}
	req.APIKey = r.Header.Get(headerCustomAPIKey)
	req.BaseURL = r.Header.Get(headerCustomBaseURL)

	payload, err := h.search.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, app_errors.ErrValidation) {
			respondWithCode(w, http.StatusBadRequest, codeMissingQuery, err)
			return
		}
		h.fail(w, err)
		return
	}

	body, err := payload.Encode()
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithText(w, http.StatusOK, body)
}

// fail answers request errors with 400 and everything else with the fixed
// gateway code.
func (h *GatewayHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, app_errors.ErrValidation) {
		respondWithError(w, err)
		return
	}
	respondWithCode(w, http.StatusBadGateway, codeUnableToProcess, err)
}
