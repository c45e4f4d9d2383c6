// Package server exposes NAV landing projections and stored simulations over HTTP.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/nav-landing/internal/store"
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/iwvelando/nav-landing/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures the handler.
type Options struct {
	MaxUploadSize  int64
	Version        string
	AllowedOrigins []string
	// Store is optional; simulation routes answer 503 without it.
	Store store.Store
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	simulations   store.Store
}

// NewHandler constructs the HTTP handler that serves the web UI and the API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       version,
		simulations:   opts.Store,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)

		// Projection of an uploaded parameter file
		r.Post("/projection", h.handleProjection)

		// Editor-driven updates
		r.Route("/editor", func(r chi.Router) {
			r.Post("/projection", h.handleEditorProjection)
			r.Post("/export", h.handleEditorExport)
			r.Post("/xlsx", h.handleEditorXLSX)
		})

		r.Route("/simulations", func(r chi.Router) {
			r.Use(h.requireStore)
			r.Get("/", h.handleListSimulations)
			r.Post("/", h.handleSaveSimulation)
			r.Get("/{id}", h.handleGetSimulation)
			r.Delete("/{id}", h.handleDeleteSimulation)
			r.Get("/{id}/projection", h.handleSimulationProjection)
			r.Get("/{id}/xlsx", h.handleSimulationXLSX)
		})
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.simulations == nil {
			h.respondErrorWithOp(w, http.StatusServiceUnavailable, "simulation storage is not configured", "server.requireStore")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// respondFailure maps an error to its status: invalid input is 400, an
// undefined NAV per share is 422, a missing simulation is 404 and anything
// else is 500.
func (h *handler) respondFailure(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case validation.IsInputError(err):
		status = http.StatusBadRequest
	case validation.IsArithmeticError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}

	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.writeJSON(w, status, errorResponse{
		Error:  strings.ReplaceAll(err.Error(), "\n", "; "),
		Fields: validation.Fields(err),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
