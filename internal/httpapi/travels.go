package httpapi

import (
	"encoding/json"
	"net/http"

	"pawmap/shared/go/models"
)

func (s *Server) handleCreateTravel(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "petID")
	if !ok {
		return
	}

	var tl models.TravelLocation
	if err := json.NewDecoder(r.Body).Decode(&tl); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tl.PetID = petID

	created, err := s.travels.Create(r.Context(), userID, &tl)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTravels(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "petID")
	if !ok {
		return
	}

	locations, err := s.travels.List(r.Context(), userID, petID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if locations == nil {
		locations = []*models.TravelLocation{}
	}

	writeJSON(w, http.StatusOK, map[string][]*models.TravelLocation{"travel_locations": locations})
}

func (s *Server) handleUpdateTravel(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := parseUUIDPath(w, r, "id")
	if !ok {
		return
	}

	var tl models.TravelLocation
	if err := json.NewDecoder(r.Body).Decode(&tl); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.travels.Update(r.Context(), userID, id, &tl); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTravel(w http.ResponseWriter, r *http.Request, userID int64) {
	id, ok := parseUUIDPath(w, r, "id")
	if !ok {
		return
	}

	if err := s.travels.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
