package api

import (
	"net/http"

	"parley/backend/internal/interfaces"
)

// ModelHandler lists the models available upstream.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List upstream models
// @Description  Lists the models of the configured OpenAI-compatible upstream, newest first. X-Custom-Api-Key and X-Custom-Base-Url override the server credentials.
// @Tags         Gateway
// @Produce      json
// @Param        X-Custom-Api-Key   header    string  false  "Upstream API key"
// @Param        X-Custom-Base-Url  header    string  false  "Upstream base URL"
// @Success      200                {object}  ModelListResponse
// @Failure      502                {object}  ErrorResponse
// @Router       /models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.List(r.Context(), r.Header.Get(headerCustomAPIKey), r.Header.Get(headerCustomBaseURL))
	if err != nil {
		respondWithCode(w, http.StatusBadGateway, codeUnableToFetchModels, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ModelListResponse{Data: models})
}
