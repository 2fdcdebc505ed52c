package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dayboard/internal/services"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/google/uuid"
)

type startTrackingRequest struct {
	CategoryID string `json:"category_id"`
}

func (h *Handler) TrackerStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Status())
}

// StartTracking opens a session for the given time category. If another
// session is running it is settled first, so at most one stays open.
func (h *Handler) StartTracking(w http.ResponseWriter, r *http.Request) {
	var req startTrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CategoryID == "" {
		respondError(w, http.StatusBadRequest, "category_id is required")
		return
	}
	category, err := h.categories.GetByID(r.Context(), req.CategoryID)
	if err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if category.Kind != store.CategoryTime {
		respondError(w, http.StatusBadRequest, "not a time category")
		return
	}
	status, err := h.tracker.Start(r.Context(), req.CategoryID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start tracking")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *Handler) StopTracking(w http.ResponseWriter, r *http.Request) {
	status, err := h.tracker.Stop(r.Context())
	if err != nil {
		if err == services.ErrNotTracking {
			respondError(w, http.StatusConflict, "not_tracking")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to stop tracking")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type createTimeLogRequest struct {
	CategoryID string    `json:"category_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// CreateTimeLog records an interval that already finished, for example a
// completed focus timer, as a closed session in one insert. The live tracker
// is not involved, so an open session stays open.
func (h *Handler) CreateTimeLog(w http.ResponseWriter, r *http.Request) {
	var req createTimeLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CategoryID == "" {
		respondError(w, http.StatusBadRequest, "category_id is required")
		return
	}
	if req.StartTime.IsZero() || !req.EndTime.After(req.StartTime) {
		respondError(w, http.StatusBadRequest, "end_time must come after start_time")
		return
	}
	category, err := h.categories.GetByID(r.Context(), req.CategoryID)
	if err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if category.Kind != store.CategoryTime {
		respondError(w, http.StatusBadRequest, "not a time category")
		return
	}
	id := uuid.NewString()
	if err := h.timeLogs.InsertClosed(r.Context(), id, req.CategoryID, req.StartTime, req.EndTime); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to record time log")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "time_logs", Action: "insert"})
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) WSChanges(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(w, r, h.hub)
}
