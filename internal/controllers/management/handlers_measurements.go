package management

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/shopspring/decimal"
)

// measurementPayload is one ingested measurement row. Phenomena are referenced
// by catalog name; the date layout depends on the target table.
type measurementPayload struct {
	Station    string          `json:"station"`
	Phenomenon string          `json:"phenomenon"`
	MeasuredAt string          `json:"measured_at"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// resolveReferences validates the station and phenomenon references of a
// payload row against the database
func (h *Handlers) resolveReferences(r *http.Request, payload *measurementPayload) (*database.PhenomenonType, error) {
	if payload.Station == "" || payload.Phenomenon == "" || payload.MeasuredAt == "" {
		return nil, errors.New("station, phenomenon and measured_at are required")
	}

	if _, err := h.controller.DB.GetStation(r.Context(), payload.Station); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("unknown station %q", payload.Station)
		}
		return nil, err
	}

	phenomenon, err := h.controller.DB.GetPhenomenonTypeByName(r.Context(), payload.Phenomenon)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("unknown phenomenon %q", payload.Phenomenon)
		}
		return nil, err
	}

	return phenomenon, nil
}

// IngestRawMeasurements stores a batch of raw sensor readings
func (h *Handlers) IngestRawMeasurements(w http.ResponseWriter, r *http.Request) {
	var payloads []measurementPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if len(payloads) == 0 {
		h.sendError(w, http.StatusBadRequest, "Empty measurement batch", nil)
		return
	}

	measurements := make([]database.RawMeasurement, 0, len(payloads))
	for i, payload := range payloads {
		phenomenon, err := h.resolveReferences(r, &payload)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Invalid measurement at index %d", i), err)
			return
		}

		measuredAt, err := time.Parse(time.RFC3339, payload.MeasuredAt)
		if err != nil {
			h.sendError(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid measured_at at index %d, expected RFC 3339", i), err)
			return
		}

		measurements = append(measurements, database.RawMeasurement{
			StationID:        payload.Station,
			PhenomenonTypeID: phenomenon.ID,
			MeasuredAt:       measuredAt,
			Quantity:         payload.Quantity,
			Active:           true,
		})
	}

	if err := h.controller.DB.InsertRawMeasurements(r.Context(), measurements); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to store raw measurements", err)
		return
	}

	h.sendJSONWithStatus(w, http.StatusCreated, map[string]interface{}{
		"message": "Raw measurements stored successfully",
		"count":   len(measurements),
	})
}

// IngestDailyMeasurements stores a batch of daily-aggregated measurements.
// The measured_at field carries the civil date (YYYY-MM-DD); re-ingesting an
// existing day replaces its quantity.
func (h *Handlers) IngestDailyMeasurements(w http.ResponseWriter, r *http.Request) {
	var payloads []measurementPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if len(payloads) == 0 {
		h.sendError(w, http.StatusBadRequest, "Empty measurement batch", nil)
		return
	}

	measurements := make([]database.DailyMeasurement, 0, len(payloads))
	for i, payload := range payloads {
		phenomenon, err := h.resolveReferences(r, &payload)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Invalid measurement at index %d", i), err)
			return
		}

		localDate, err := time.Parse("2006-01-02", payload.MeasuredAt)
		if err != nil {
			h.sendError(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid measured_at at index %d, expected YYYY-MM-DD", i), err)
			return
		}

		measurements = append(measurements, database.DailyMeasurement{
			StationID:        payload.Station,
			PhenomenonTypeID: phenomenon.ID,
			LocalDate:        localDate,
			Quantity:         payload.Quantity,
			Active:           true,
		})
	}

	if err := h.controller.DB.InsertDailyMeasurements(r.Context(), measurements); err != nil {
		h.sendError(w, http.StatusInternalServerError, "Failed to store daily measurements", err)
		return
	}

	h.sendJSONWithStatus(w, http.StatusCreated, map[string]interface{}{
		"message": "Daily measurements stored successfully",
		"count":   len(measurements),
	})
}
