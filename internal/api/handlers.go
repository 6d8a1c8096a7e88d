package api

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/insights"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/rgehrsitz/emerytura/internal/validation"
)

const maxRequestBody = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Recorder    *usage.Recorder
	Store       usage.Store
	CurrentYear func() int
	// Rand picks facts; nil uses the global source.
	Rand *rand.Rand
}

// NewHandler creates a handler reading the usage log from the recorder's store.
func NewHandler(recorder *usage.Recorder) *Handler {
	return &Handler{
		Recorder:    recorder,
		Store:       recorder.Store,
		CurrentYear: func() int { return time.Now().Year() },
	}
}

// logger returns the recorder's logger, or a no-op one.
func (h *Handler) logger() calculation.Logger {
	if h.Recorder != nil && h.Recorder.Logger != nil {
		return h.Recorder.Logger
	}
	return calculation.NopLogger{}
}

// CreateSimulation validates the request, runs and records it.
// POST /api/simulations
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	params := req.SimulationParams
	if g, err := domain.ParseGender(string(params.Gender)); err == nil {
		params.Gender = g
	}
	if err := validation.ValidateParams(params, h.CurrentYear()); err != nil {
		h.writeValidationError(w, err)
		return
	}
	if err := validation.ValidatePostalCode(req.PostalCode); err != nil {
		h.writeValidationError(w, err)
		return
	}

	result, rec := h.Recorder.Run(r.Context(), params, req.PostalCode)
	if result.IsEmpty() {
		h.writeError(w, http.StatusUnprocessableEntity, "Simulation produced no result", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, SimulationResponse{
		ID:     rec.ID,
		Result: result,
		Group:  insights.GroupFor(result.NominalPension),
		Fact:   insights.RandomFact(h.Rand),
	})
}

// ListUsage returns one page of the filtered usage log.
// GET /api/usage
func (h *Handler) ListUsage(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	records, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list usage", err)
		return
	}

	page, err := filter.Paginate(records)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// ExportUsage streams every filtered record as CSV, ignoring paging.
// GET /api/usage/export
func (h *Handler) ExportUsage(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err == nil {
		filter, err = filter.Normalize()
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	records, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list usage", err)
		return
	}

	filename := fmt.Sprintf("usage_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if err := usage.ExportCSV(w, filter.Apply(records)); err != nil {
		h.logger().Errorf("failed to export usage: %v", err)
	}
}

// ListPensionGroups returns the current pension distribution.
// GET /api/pension-groups
func (h *Handler) ListPensionGroups(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, insights.PensionGroups())
}

// RandomFact returns one fact.
// GET /api/facts/random
func (h *Handler) RandomFact(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, FactResponse{Fact: insights.RandomFact(h.Rand)})
}

// parseFilter reads the usage filter from query parameters. A date-only
// dateTo covers that whole day.
func parseFilter(q url.Values) (usage.Filter, error) {
	var f usage.Filter
	var err error

	if f.Page, err = parseInt(q, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = parseInt(q, "pageSize"); err != nil {
		return f, err
	}
	if v := q.Get("ageMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("ageMin: %w", err)
		}
		f.AgeMin = &n
	}
	if v := q.Get("ageMax"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("ageMax: %w", err)
		}
		f.AgeMax = &n
	}
	if v := q.Get("gender"); v != "" {
		g, err := domain.ParseGender(v)
		if err != nil {
			return f, err
		}
		f.Gender = g
	}
	if v := q.Get("dateFrom"); v != "" {
		t, err := usage.ParseDateBound(v, false)
		if err != nil {
			return f, fmt.Errorf("dateFrom: %w", err)
		}
		f.DateFrom = &t
	}
	if v := q.Get("dateTo"); v != "" {
		t, err := usage.ParseDateBound(v, true)
		if err != nil {
			return f, fmt.Errorf("dateTo: %w", err)
		}
		f.DateTo = &t
	}
	f.Search = q.Get("search")
	return f, nil
}

func parseInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger().Errorf("failed to write response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid simulation parameters",
			Code:    "validation_failed",
			Details: []validation.FieldError(verrs),
		})
		return
	}
	h.writeError(w, http.StatusBadRequest, "Invalid simulation parameters", err)
}
