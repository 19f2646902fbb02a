package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// ListSports returns the profile of every supported sport
// @Summary List Sports
// @Tags Registry
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sports [get]
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports := make([]registry.Summary, 0, len(models.AllSports))
	for _, sport := range models.AllSports {
		profile, err := registry.Get(sport)
		if err != nil {
			h.logger.Errorw("Registry missing sport", "sport", sport, "error", err)
			continue
		}
		sports = append(sports, profile.Summary())
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"sports":     sports,
		"currencies": logic.SupportedCurrencies(),
		"horizons":   models.AllHorizons,
	})
}

// GetSport returns one sport's positions, formations and comparison categories
// @Summary Get Sport Profile
// @Tags Registry
// @Produce json
// @Param sport path string true "Sport code, e.g. FOOTBALL"
// @Success 200 {object} registry.Summary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sports/{sport} [get]
func (h *Handler) GetSport(w http.ResponseWriter, r *http.Request) {
	sport, err := models.ParseSport(chi.URLParam(r, "sport"))
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	profile, err := registry.Get(sport)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, profile.Summary())
}
