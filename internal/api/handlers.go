/*
Package api exposes the analysis of labeled datasets over HTTP, keeping
generated and uploaded datasets in a session store.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/dataset"
	"github.com/ckacy01/entropia/dataset/csv"
	datasetjson "github.com/ckacy01/entropia/dataset/json"
	"github.com/ckacy01/entropia/dataset/synthetic"
	"github.com/ckacy01/entropia/feature"
	"github.com/ckacy01/entropia/internal/report"
	"github.com/ckacy01/entropia/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MaxBodySize is the largest request body accepted.
const MaxBodySize = 10 * 1024 * 1024

// Handler serves the API endpoints.
type Handler struct {
	Store   session.Store
	Options entropia.Options
	// MaxInstances is the largest dataset Generate produces
	MaxInstances int
	// Now is the clock seeds are drawn from when requests carry none
	Now func() time.Time
}

/*
NewHandler returns a Handler keeping datasets on the given store and
generating at most maxInstances instances per request.
*/
func NewHandler(store session.Store, opts entropia.Options, maxInstances int) *Handler {
	return &Handler{Store: store, Options: opts, MaxInstances: maxInstances, Now: time.Now}
}

/*
NewRouter returns a chi router serving the handler's routes with request
logging, panic recovery and CORS for the given origins.
*/
func NewRouter(h *Handler, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Post("/api/analyze", h.Analyze)
	r.Post("/api/generate", h.Generate)
	r.Get("/api/sessions/{id}", h.GetSession)
	r.Get("/api/sessions/{id}/analysis", h.AnalyzeSession)
	r.Get("/api/sessions/{id}/csv", h.ExportSession)
	r.Delete("/api/sessions/{id}", h.DeleteSession)
}

// HealthCheck answers OK while the server runs.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// Analyze analyzes the dataset in the request body.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req DatasetRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := req.Labeled(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := &AnalysisResponse{}
	if req.Store {
		resp.SessionID, err = h.Store.Create(r.Context(), l)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	resp.Analysis, err = h.analyze(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Generate generates a synthetic dataset and keeps it under a new session.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Instances > h.MaxInstances {
		writeError(w, fmt.Errorf("cannot generate %d instances, the limit is %d: %w", req.Instances, h.MaxInstances, feature.ErrInvalidArgument))
		return
	}
	doc := &datasetjson.Document{Class: req.Class, Features: req.Features}
	empty, err := doc.Labeled(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	seed := h.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	l, err := synthetic.Generate(req.Instances, empty.Schema.Attributes, req.Class, seed)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := h.Store.Create(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := datasetResponse(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.SessionID = id
	resp.Seed = &seed
	writeJSON(w, http.StatusCreated, resp)
}

// GetSession returns the rows of the dataset kept under a session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, l, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}
	resp, err := datasetResponse(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.SessionID = id
	writeJSON(w, http.StatusOK, resp)
}

// AnalyzeSession analyzes the dataset kept under a session.
func (h *Handler) AnalyzeSession(w http.ResponseWriter, r *http.Request) {
	id, l, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}
	summary, err := h.analyze(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &AnalysisResponse{SessionID: id, Analysis: summary})
}

// ExportSession writes the dataset kept under a session as CSV.
func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	id, l, ok := h.sessionDataset(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".csv"))
	if err := csv.Write(r.Context(), w, l); err != nil {
		log.Printf("writing CSV of session %s: %v", id, err)
	}
}

// DeleteSession forgets the dataset kept under a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sessionDataset(w http.ResponseWriter, r *http.Request) (string, *dataset.Labeled, bool) {
	id := chi.URLParam(r, "id")
	l, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return id, nil, false
	}
	if l == nil {
		writeJSON(w, http.StatusNotFound, &ErrorResponse{fmt.Sprintf("session %s not found", id)})
		return id, nil, false
	}
	return id, l, true
}

func (h *Handler) analyze(ctx context.Context, l *dataset.Labeled) (*report.Summary, error) {
	analysis, err := entropia.Analyze(ctx, l, h.Options)
	if err != nil {
		return nil, err
	}
	return report.NewSummary(analysis), nil
}

func datasetResponse(ctx context.Context, l *dataset.Labeled) (*DatasetResponse, error) {
	samples, err := l.Dataset.Samples(ctx)
	if err != nil {
		return nil, err
	}
	resp := &DatasetResponse{Columns: l.Schema.Columns(), Rows: make([][]string, 0, len(samples))}
	for _, s := range samples {
		row, err := l.Schema.Row(ctx, s)
		if err != nil {
			return nil, err
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, &ErrorResponse{fmt.Sprintf("invalid JSON: %v", err)})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, feature.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, feature.ErrSchemaMismatch):
		status = http.StatusUnprocessableEntity
	default:
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, status, &ErrorResponse{err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
