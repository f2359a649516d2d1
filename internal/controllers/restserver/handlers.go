package restserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/hidromet/hidromet-server/internal/aggregation"
	"github.com/hidromet/hidromet-server/internal/constants"
	"github.com/hidromet/hidromet-server/internal/database"
	"github.com/hidromet/hidromet-server/internal/log"
	"github.com/hidromet/hidromet-server/pkg/responseformat"
	"github.com/gorilla/mux"
)

// dateParam is the expected layout of the start/end query parameters
const dateParam = "2006-01-02"

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// errorBody is the JSON shape of a failed request
type errorBody struct {
	Error string `json:"error"`
}

// GetSeries handles requests for aggregated measurement series. Mode selects
// monthly or exact-date bucketing; start/end are required for date_range
// mode and station is always optional.
func (h *Handlers) GetSeries(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	request := aggregation.Request{
		Mode:    query.Get("mode"),
		Station: query.Get("station"),
	}

	if value := query.Get("start"); value != "" {
		start, err := time.Parse(dateParam, value)
		if err != nil {
			h.formatter.WriteResponseWithStatus(w, req, http.StatusBadRequest,
				errorBody{Error: "invalid start date, expected YYYY-MM-DD"}, nil)
			return
		}
		request.Start = &start
	}
	if value := query.Get("end"); value != "" {
		end, err := time.Parse(dateParam, value)
		if err != nil {
			h.formatter.WriteResponseWithStatus(w, req, http.StatusBadRequest,
				errorBody{Error: "invalid end date, expected YYYY-MM-DD"}, nil)
			return
		}
		request.End = &end
	}

	series, err := h.controller.engine.Run(req.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, aggregation.ErrInvalidMode),
			errors.Is(err, aggregation.ErrMissingRangeBounds):
			h.formatter.WriteResponseWithStatus(w, req, http.StatusBadRequest,
				errorBody{Error: err.Error()}, nil)
		default:
			log.Errorf("error running series request: %v", err)
			h.formatter.WriteResponseWithStatus(w, req, http.StatusInternalServerError,
				errorBody{Error: "error fetching measurement series"}, nil)
		}
		return
	}

	if err := h.formatter.WriteResponse(w, req, series, nil); err != nil {
		log.Errorf("error encoding series response: %v", err)
	}
}

// GetPhenomena returns the active phenomenon catalog
func (h *Handlers) GetPhenomena(w http.ResponseWriter, req *http.Request) {
	phenomena, err := h.controller.DB.GetPhenomenonTypes(req.Context())
	if err != nil {
		log.Errorf("error fetching phenomenon catalog: %v", err)
		h.formatter.WriteResponseWithStatus(w, req, http.StatusInternalServerError,
			errorBody{Error: "error fetching phenomenon catalog"}, nil)
		return
	}

	if err := h.formatter.WriteResponse(w, req, phenomena, nil); err != nil {
		log.Errorf("error encoding phenomena response: %v", err)
	}
}

// GetStations returns the active stations for the map client
func (h *Handlers) GetStations(w http.ResponseWriter, req *http.Request) {
	stations, err := h.controller.DB.GetStations(req.Context())
	if err != nil {
		log.Errorf("error fetching stations: %v", err)
		h.formatter.WriteResponseWithStatus(w, req, http.StatusInternalServerError,
			errorBody{Error: "error fetching stations"}, nil)
		return
	}

	if err := h.formatter.WriteResponse(w, req, stations, nil); err != nil {
		log.Errorf("error encoding stations response: %v", err)
	}
}

// GetStationLatest returns the most recent raw reading per phenomenon for
// one station
func (h *Handlers) GetStationLatest(w http.ResponseWriter, req *http.Request) {
	stationID := mux.Vars(req)["id"]

	if _, err := h.controller.DB.GetStation(req.Context(), stationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.formatter.WriteResponseWithStatus(w, req, http.StatusNotFound,
				errorBody{Error: "station not found"}, nil)
			return
		}
		log.Errorf("error fetching station %s: %v", stationID, err)
		h.formatter.WriteResponseWithStatus(w, req, http.StatusInternalServerError,
			errorBody{Error: "error fetching station"}, nil)
		return
	}

	readings, err := h.controller.DB.GetLatestReadings(req.Context(), stationID)
	if err != nil {
		log.Errorf("error fetching latest readings for %s: %v", stationID, err)
		h.formatter.WriteResponseWithStatus(w, req, http.StatusInternalServerError,
			errorBody{Error: "error fetching latest readings"}, nil)
		return
	}

	if err := h.formatter.WriteResponse(w, req, readings, nil); err != nil {
		log.Errorf("error encoding latest readings response: %v", err)
	}
}

// GetHealth reports service liveness and database reachability
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	health := map[string]string{
		"status":  "ok",
		"version": constants.Version,
	}

	if err := h.controller.DB.Ping(); err != nil {
		health["status"] = "degraded"
		health["database"] = err.Error()
		h.formatter.WriteResponseWithStatus(w, req, http.StatusServiceUnavailable, health, nil)
		return
	}
	health["database"] = "ok"

	h.formatter.WriteResponse(w, req, health, nil)
}
