package httpapi

import (
	"encoding/json"
	"net/http"

	"pawmap/shared/go/models"
)

type createPinRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *Server) handleCreatePin(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "petID")
	if !ok {
		return
	}

	var req createPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pin, err := s.pins.Create(r.Context(), userID, petID, req.Latitude, req.Longitude)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pin)
}

func (s *Server) handleListPins(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "petID")
	if !ok {
		return
	}

	pins, err := s.pins.List(r.Context(), userID, petID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if pins == nil {
		pins = []*models.Pin{}
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Pin{"pins": pins})
}

func (s *Server) handleUpdatePin(w http.ResponseWriter, r *http.Request, userID int64) {
	pinID, ok := parseUUIDPath(w, r, "id")
	if !ok {
		return
	}

	var upd models.PinUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.pins.Update(r.Context(), userID, pinID, upd); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePin(w http.ResponseWriter, r *http.Request, userID int64) {
	pinID, ok := parseUUIDPath(w, r, "id")
	if !ok {
		return
	}

	if err := s.pins.Delete(r.Context(), userID, pinID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearPins deletes every pin for a pet. The confirm query parameter is
// the irreversible-action gate; the UI only sets it after the user agreed to
// the prompt.
func (s *Server) handleClearPins(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "petID")
	if !ok {
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "clearing all pins requires confirm=true"})
		return
	}

	deleted, err := s.pins.ClearForPet(r.Context(), userID, petID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
