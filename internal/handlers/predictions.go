package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

const idRule = "required,max=64"

// pathID reads and validates a URL id parameter
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, name))
	if err := h.validate.Var(id, idRule); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return "", false
	}
	return id, true
}

func horizonParam(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("horizon")); v != "" {
		return strings.ToUpper(v)
	}
	return string(models.HorizonNextMatch)
}

func currencyParam(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("currency")); v != "" {
		return strings.ToUpper(v)
	}
	return logic.BaseCurrency
}

// GetInjuryRisk returns the injury risk assessment for a player
// @Summary Get Player Injury Risk
// @Tags Predictions
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} models.Envelope[models.InjuryRiskAssessment]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{id}/injury-risk [get]
func (h *Handler) GetInjuryRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.engine.PredictInjuryRisk(r.Context(), id)
	if err != nil {
		h.engineError(w, err, "Failed to assess injury risk", "player", id)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetPerformance forecasts a player's performance
// @Summary Get Player Performance Forecast
// @Tags Predictions
// @Produce json
// @Param id path string true "Player ID"
// @Param horizon query string false "NEXT_MATCH, NEXT_WEEK, NEXT_MONTH or SEASON"
// @Success 200 {object} models.Envelope[models.PerformancePrediction]
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players/{id}/performance [get]
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	q := models.PerformanceQuery{
		PlayerID: strings.TrimSpace(chi.URLParam(r, "id")),
		Horizon:  horizonParam(r),
	}
	if err := h.validate.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player id or horizon")
		return
	}

	res, err := h.engine.PredictPerformance(r.Context(), q.PlayerID, models.Horizon(q.Horizon))
	if err != nil {
		h.engineError(w, err, "Failed to forecast performance", "player", q.PlayerID, "horizon", q.Horizon)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetMarketValue values a player
// @Summary Get Player Market Value
// @Tags Predictions
// @Produce json
// @Param id path string true "Player ID"
// @Param currency query string false "ISO currency code, default GBP"
// @Success 200 {object} models.Envelope[models.MarketValueAssessment]
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players/{id}/market-value [get]
func (h *Handler) GetMarketValue(w http.ResponseWriter, r *http.Request) {
	q := models.MarketValueQuery{
		PlayerID: strings.TrimSpace(chi.URLParam(r, "id")),
		Currency: currencyParam(r),
	}
	if err := h.validate.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player id or currency")
		return
	}

	res, err := h.engine.CalculateMarketValue(r.Context(), q.PlayerID, q.Currency)
	if err != nil {
		h.engineError(w, err, "Failed to value player", "player", q.PlayerID, "currency", q.Currency)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// ComparePlayers compares two players of the same sport
// @Summary Compare Players
// @Tags Predictions
// @Produce json
// @Param player1 query string true "First player ID"
// @Param player2 query string true "Second player ID"
// @Success 200 {object} models.Envelope[models.PlayerComparison]
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players/compare [get]
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	q := models.CompareQuery{
		Player1: strings.TrimSpace(r.URL.Query().Get("player1")),
		Player2: strings.TrimSpace(r.URL.Query().Get("player2")),
	}
	if err := h.validate.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "player1 and player2 must be two different player ids")
		return
	}

	res, err := h.engine.ComparePlayers(r.Context(), q.Player1, q.Player2)
	if err != nil {
		h.engineError(w, err, "Failed to compare players", "player1", q.Player1, "player2", q.Player2)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetTeamInjuryRisk assesses every active player of a team
// @Summary Get Team Injury Risk
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.BatchResult[models.InjuryRiskAssessment]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /teams/{id}/injury-risk [get]
func (h *Handler) GetTeamInjuryRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.engine.TeamInjuryRisk(r.Context(), id)
	if err != nil {
		h.engineError(w, err, "Failed to assess team injury risk", "team", id)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetTeamPerformance forecasts every active player of a team
// @Summary Get Team Performance Forecast
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Param horizon query string false "Prediction horizon"
// @Success 200 {object} models.BatchResult[models.PerformancePrediction]
// @Router /teams/{id}/performance [get]
func (h *Handler) GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	horizon := horizonParam(r)
	if _, err := logic.ParseHorizon(horizon); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.TeamPerformance(r.Context(), id, models.Horizon(horizon))
	if err != nil {
		h.engineError(w, err, "Failed to forecast team performance", "team", id, "horizon", horizon)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetTeamMarketValue values every active player of a team
// @Summary Get Team Market Value
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Param currency query string false "ISO currency code, default GBP"
// @Success 200 {object} models.BatchResult[models.MarketValueAssessment]
// @Router /teams/{id}/market-value [get]
func (h *Handler) GetTeamMarketValue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	currency := currencyParam(r)
	if _, err := logic.ParseCurrency(currency); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.TeamMarketValue(r.Context(), id, currency)
	if err != nil {
		h.engineError(w, err, "Failed to value team", "team", id, "currency", currency)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}
