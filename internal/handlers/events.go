package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// PlayerUpdated handles POST /api/v1/events/player-updated
// @Summary Notify Player Update
// @Description Queues a player update; cached assessments are cleared and an optional appearance is recorded
// @Tags Events
// @Accept json
// @Produce json
// @Param body body models.PlayerUpdatedEvent true "Event"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Queue full"
// @Router /events/player-updated [post]
func (h *Handler) PlayerUpdated(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var event models.PlayerUpdatedEvent
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&event); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(&event); err != nil {
		h.logger.Debugw("Rejected player update", "error", err, "player", event.PlayerID)
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if event.Match != nil && event.Kind != models.UpdatePerformance {
		h.errorResponse(w, http.StatusBadRequest, "match is only accepted with kind=performance")
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if !h.pool.Enqueue(&event) {
		w.Header().Set("Retry-After", "1")
		h.errorResponse(w, http.StatusServiceUnavailable, "Event queue full")
		return
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]string{
		"status":    "accepted",
		"player_id": event.PlayerID,
	})
}
