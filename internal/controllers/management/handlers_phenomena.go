package management

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hidromet/hidromet-server/internal/aggregation"
	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/gorilla/mux"
)

// phenomenonID extracts and parses the {id} path variable
func phenomenonID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// validatePhenomenon checks the fields common to create and update. The
// allowed-operations list must parse against the operation enum and is
// rewritten to its canonical form.
func (h *Handlers) validatePhenomenon(phenomenon *database.PhenomenonType) error {
	if phenomenon.Name == "" {
		return errors.New("phenomenon name is required")
	}

	set, err := aggregation.ParseOperationSet(phenomenon.AllowedOperations)
	if err != nil {
		return err
	}
	if set.IsEmpty() {
		return errors.New("at least one allowed operation is required")
	}
	phenomenon.AllowedOperations = set.String()

	return nil
}

// GetPhenomena returns all active phenomenon catalog entries
func (h *Handlers) GetPhenomena(w http.ResponseWriter, r *http.Request) {
	phenomena, err := h.controller.DB.GetPhenomenonTypes(r.Context())
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to get phenomenon types", err)
		return
	}

	response := map[string]interface{}{
		"phenomena": phenomena,
		"count":     len(phenomena),
	}

	h.sendJSON(w, response)
}

// GetPhenomenon returns a specific catalog entry
func (h *Handlers) GetPhenomenon(w http.ResponseWriter, r *http.Request) {
	id, err := phenomenonID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid phenomenon ID", err)
		return
	}

	phenomenon, err := h.controller.DB.GetPhenomenonType(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Phenomenon type not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to get phenomenon type", err)
		}
		return
	}

	h.sendJSON(w, phenomenon)
}

// CreatePhenomenon creates a new catalog entry
func (h *Handlers) CreatePhenomenon(w http.ResponseWriter, r *http.Request) {
	var phenomenon database.PhenomenonType
	if err := json.NewDecoder(r.Body).Decode(&phenomenon); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	if err := h.validatePhenomenon(&phenomenon); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid phenomenon type", err)
		return
	}
	phenomenon.Active = true

	if err := h.controller.DB.CreatePhenomenonType(r.Context(), &phenomenon); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to create phenomenon type", err)
		return
	}

	h.sendJSONWithStatus(w, http.StatusCreated, map[string]interface{}{
		"message":    "Phenomenon type created successfully",
		"phenomenon": phenomenon,
	})
}

// UpdatePhenomenon updates an existing catalog entry
func (h *Handlers) UpdatePhenomenon(w http.ResponseWriter, r *http.Request) {
	id, err := phenomenonID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid phenomenon ID", err)
		return
	}

	var phenomenon database.PhenomenonType
	if err := json.NewDecoder(r.Body).Decode(&phenomenon); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	phenomenon.ID = id

	if err := h.validatePhenomenon(&phenomenon); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid phenomenon type", err)
		return
	}

	if err := h.controller.DB.UpdatePhenomenonType(r.Context(), &phenomenon); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Phenomenon type not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to update phenomenon type", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Phenomenon type updated successfully",
	})
}

// DeletePhenomenon soft-deletes a catalog entry
func (h *Handlers) DeletePhenomenon(w http.ResponseWriter, r *http.Request) {
	id, err := phenomenonID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid phenomenon ID", err)
		return
	}

	if err := h.controller.DB.DeletePhenomenonType(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Phenomenon type not found", err)
		} else {
			h.sendError(w, http.StatusInternalServerError, "Failed to delete phenomenon type", err)
		}
		return
	}

	h.sendJSON(w, map[string]interface{}{
		"message": "Phenomenon type deleted successfully",
	})
}
