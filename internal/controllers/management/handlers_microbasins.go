package management

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/gorilla/mux"
)

// microbasinID extracts and parses the {id} path variable
func microbasinID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// GetMicrobasins returns all active microbasins
func (h *Handlers) GetMicrobasins(w http.ResponseWriter, r *http.Request) {
	basins, err := h.controller.DB.GetMicrobasins(r.Context())
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to get microbasins", err)
		return
	}

	response := map[string]interface{}{
		"microbasins": basins,
		"count":       len(basins),
	}

	h.sendJSON(w, response)
}

// GetMicrobasin returns a specific microbasin
func (h *Handlers) GetMicrobasin(w http.ResponseWriter, r *http.Request) {
	id, err := microbasinID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid microbasin ID", err)
		return
	}

	basin, err := h.controller.DB.GetMicrobasin(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Microbasin not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to get microbasin", err)
		}
		return
	}

	h.sendJSON(w, basin)
}

// CreateMicrobasin creates a new microbasin
func (h *Handlers) CreateMicrobasin(w http.ResponseWriter, r *http.Request) {
	var basin database.Microbasin
	if err := json.NewDecoder(r.Body).Decode(&basin); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	if basin.Name == "" {
		h.sendError(w, http.StatusBadRequest, "Microbasin name is required", nil)
		return
	}
	basin.Active = true

	if err := h.controller.DB.CreateMicrobasin(r.Context(), &basin); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to create microbasin", err)
		return
	}

	h.sendJSONWithStatus(w, http.StatusCreated, map[string]interface{}{
		"message":    "Microbasin created successfully",
		"microbasin": basin,
	})
}

// UpdateMicrobasin updates an existing microbasin
func (h *Handlers) UpdateMicrobasin(w http.ResponseWriter, r *http.Request) {
	id, err := microbasinID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid microbasin ID", err)
		return
	}

	var basin database.Microbasin
	if err := json.NewDecoder(r.Body).Decode(&basin); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	basin.ID = id

	if err := h.controller.DB.UpdateMicrobasin(r.Context(), &basin); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Microbasin not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to update microbasin", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Microbasin updated successfully",
	})
}

// DeleteMicrobasin soft-deletes a microbasin
func (h *Handlers) DeleteMicrobasin(w http.ResponseWriter, r *http.Request) {
	id, err := microbasinID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid microbasin ID", err)
		return
	}

	if err := h.controller.DB.DeleteMicrobasin(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Microbasin not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to delete microbasin", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Microbasin deleted successfully",
	})
}
