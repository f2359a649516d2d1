package management

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetStations returns all active stations
func (h *Handlers) GetStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.controller.DB.GetStations(r.Context())
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to get stations", err)
		return
	}

	response := map[string]interface{}{
		"stations": stations,
		"count":    len(stations),
	}

	h.sendJSON(w, response)
}

// GetStation returns a specific station
func (h *Handlers) GetStation(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["id"]

	station, err := h.controller.DB.GetStation(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Station not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to get station", err)
		}
		return
	}

	h.sendJSON(w, station)
}

// CreateStation creates a new station. A missing station_id is filled with
// a generated UUID.
func (h *Handlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	var station database.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	// Validate required fields
	if station.Name == "" {
		h.sendError(w, http.StatusBadRequest, "Station name is required", nil)
		return
	}
	if station.StationID == "" {
		station.StationID = uuid.New().String()
	}
	station.Active = true

	if station.MicrobasinID != 0 {
		if _, err := h.controller.DB.GetMicrobasin(r.Context(), station.MicrobasinID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				h.sendError(w, http.StatusBadRequest, "Referenced microbasin does not exist", nil)
			} else {
				h.sendError(w, http.StatusInternalServerError, "Failed to validate microbasin", err)
			}
			return
		}
	}

	if err := h.controller.DB.CreateStation(r.Context(), &station); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to create station", err)
		return
	}

	h.sendJSONWithStatus(w, http.StatusCreated, map[string]interface{}{
		"message": "Station created successfully",
		"station": station,
	})
}

// UpdateStation updates an existing station
func (h *Handlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["id"]

	var station database.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	station.StationID = stationID

	if err := h.controller.DB.UpdateStation(r.Context(), &station); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Station not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to update station", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Station updated successfully",
	})
}

// DeleteStation soft-deletes a station
func (h *Handlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["id"]

	if err := h.controller.DB.DeleteStation(r.Context(), stationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Station not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to delete station", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Station deleted successfully",
	})
}
