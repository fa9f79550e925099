// Package api exposes the calculation engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/docs"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

const maxBodyBytes = 1 << 20

// CalculateResponse is the success envelope of POST /api/retirement/calculate
type CalculateResponse struct {
	Success      bool                 `json:"success"`
	Calculations *domain.Calculations `json:"calculations"`
	Timestamp    string               `json:"timestamp"`
	RequestID    string               `json:"requestId"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// CrossFieldDetail reports two fields that contradict each other
type CrossFieldDetail struct {
	Field   string `json:"field"`
	Related string `json:"related"`
	Message string `json:"message"`
}

// CalculationHandler serves the retirement calculation endpoints
type CalculationHandler struct {
	engine  *calculation.CalculationEngine
	timeout time.Duration
	logger  *logrus.Logger
	now     func() time.Time
}

// NewCalculationHandler creates a handler; timeout <= 0 disables the per-request deadline
func NewCalculationHandler(engine *calculation.CalculationEngine, timeout time.Duration, logger *logrus.Logger) *CalculationHandler {
	return &CalculationHandler{
		engine:  engine,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *CalculationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/retirement/calculate", h.Calculate).Methods("POST")
	router.HandleFunc("/api/retirement/calculate", h.Docs).Methods("GET")
	router.HandleFunc("/healthz", h.Health).Methods("GET")
}

// Calculate validates the JSON profile and runs the engine
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	log := h.logger.WithField("request_id", requestID)

	raw, err := decodeObject(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.WithError(err).Warn("invalid request body")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Request body must be a JSON object",
			Details:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	engine := h.engine
	if s := r.URL.Query().Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:     "Invalid seed",
				Details:   "seed must be an integer",
				RequestID: requestID,
			})
			return
		}
		engine = engine.WithSeed(seed)
	}

	profile, err := config.ParseProfile(raw)
	if err != nil {
		h.writeProfileError(w, log, requestID, err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	calc, err := engine.Calculate(ctx, profile)
	if err != nil {
		log.WithError(err).Error("calculation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal calculation error",
			Details:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	log.WithFields(logrus.Fields{
		"total_at_retirement": calc.Projection.TotalAtRetirement,
		"success_rate":        calc.MonteCarlo.SuccessRate,
		"insights":            len(calc.Insights),
	}).Debug("calculation served")

	writeJSON(w, http.StatusOK, CalculateResponse{
		Success:      true,
		Calculations: calc,
		Timestamp:    h.now().UTC().Format(time.RFC3339),
		RequestID:    requestID,
	})
}

func (h *CalculationHandler) writeProfileError(w http.ResponseWriter, log *logrus.Entry, requestID string, err error) {
	var ve *config.ValidationError
	var ce *config.CrossFieldError
	switch {
	case errors.As(err, &ve):
		log.WithField("fields", len(ve.Fields)).Info("profile failed validation")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Validation failed",
			Details:   ve.Fields,
			RequestID: requestID,
		})
	case errors.As(err, &ce):
		log.WithField("field", ce.Field).Info("profile has contradictory fields")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid field combination",
			Details:   []CrossFieldDetail{{Field: ce.Field, Related: ce.Related, Message: ce.Message}},
			RequestID: requestID,
		})
	default:
		log.WithError(err).Error("unexpected profile error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal calculation error",
			Details:   err.Error(),
			RequestID: requestID,
		})
	}
}

// Docs returns the static API documentation
func (h *CalculationHandler) Docs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, docs.Build())
}

// Health reports liveness
func (h *CalculationHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeObject reads exactly one JSON object, keeping numbers exact
func decodeObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("expected a JSON object")
	}
	return obj, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
