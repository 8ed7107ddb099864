package api

import (
	"net/http"

	"parley/backend/internal/interfaces"
	"parley/backend/internal/model"
)

// ConfigHandler serves the global configuration and the mask catalog.
type ConfigHandler struct {
	config interfaces.ConfigStore
	masks  interfaces.MaskCatalog
}

func NewConfigHandler(config interfaces.ConfigStore, masks interfaces.MaskCatalog) *ConfigHandler {
	return &ConfigHandler{config: config, masks: masks}
}

// GetConfig godoc
// @Summary      Get the configuration
// @Tags         Config
// @Produce      json
// @Success      200  {object}  model.Config
// @Router       /v1/config [get]
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.config.Get())
}

// UpdateConfig godoc
// @Summary      Update the configuration
// @Description  Merges the given fields into the configuration. New sessions take their settings from it.
// @Tags         Config
// @Accept       json
// @Produce      json
// @Param        config  body      model.ConfigPatch  true  "Fields to change"
// @Success      200     {object}  model.Config
// @Failure      400     {object}  ErrorResponse
// @Router       /v1/config [patch]
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch model.ConfigPatch
	if err := decodeRequest(r, &patch, false); err != nil {
		respondWithError(w, err)
		return
	}
	cfg, _ := h.config.Update(patch)
	respondWithJSON(w, http.StatusOK, cfg)
}

// ResetConfig godoc
// @Summary      Restore the default configuration
// @Tags         Config
// @Produce      json
// @Success      200  {object}  model.Config
// @Router       /v1/config/reset [post]
func (h *ConfigHandler) ResetConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.config.Reset())
}

// ListMasks godoc
// @Summary      List masks
// @Tags         Masks
// @Produce      json
// @Success      200  {object}  MaskList
// @Router       /v1/masks [get]
func (h *ConfigHandler) ListMasks(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, MaskList{Masks: h.masks.List()})
}
