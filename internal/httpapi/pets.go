package httpapi

import (
	"encoding/json"
	"net/http"

	"pawmap/shared/go/models"
)

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request, userID int64) {
	var pet models.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.pets.Create(r.Context(), userID, &pet)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request, userID int64) {
	petList, err := s.pets.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if petList == nil {
		petList = []*models.Pet{}
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Pet{"pets": petList})
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request, userID int64) {
	petID, ok := parseUUIDPath(w, r, "id")
	if !ok {
		return
	}

	pet, err := s.pets.Get(r.Context(), userID, petID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pet)
}
