package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/store"
	"go.uber.org/zap"
)

type simulationResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Document  config.Document `json:"document"`
	Notices   []string        `json:"notices,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
}

func newSimulationResponse(sim store.Simulation) simulationResponse {
	return simulationResponse{
		ID:        sim.ID,
		CreatedAt: sim.CreatedAt,
		UpdatedAt: sim.UpdatedAt,
		Document:  sim.Parameters.ToDocument(),
		Warnings:  sim.Parameters.ValidateConfiguration(),
	}
}

func (h *handler) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListSimulations"
	summaries, err := h.simulations.List(r.Context(), r.URL.Query().Get("fund"))
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleSaveSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveSimulation"
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	params, notices, err := config.DecodeParameters(h.logger, body)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	sim, err := h.simulations.Save(r.Context(), params)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	h.logger.Info("simulation saved",
		zap.String("op", op),
		zap.String("id", sim.ID),
		zap.String("fund", sim.Parameters.FundName),
		zap.String("scenario", sim.Parameters.ScenarioName),
	)

	response := newSimulationResponse(sim)
	response.Notices = notices
	h.writeJSON(w, http.StatusCreated, response)
}

func (h *handler) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	sim, ok := h.loadSimulation(w, r, "server.handleGetSimulation")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, newSimulationResponse(sim))
}

func (h *handler) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteSimulation"
	id := chi.URLParam(r, "id")
	if err := h.simulations.Delete(r.Context(), id); err != nil {
		h.respondFailure(w, err, op)
		return
	}

	h.logger.Info("simulation deleted", zap.String("op", op), zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleSimulationProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulationProjection"
	start := time.Now()
	sim, ok := h.loadSimulation(w, r, op)
	if !ok {
		return
	}
	h.writeProjection(w, sim.Parameters, nil, start, op)
}

func (h *handler) handleSimulationXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulationXLSX"
	sim, ok := h.loadSimulation(w, r, op)
	if !ok {
		return
	}
	h.writeXLSX(w, sim.Parameters, op)
}

func (h *handler) loadSimulation(w http.ResponseWriter, r *http.Request, op string) (store.Simulation, bool) {
	sim, err := h.simulations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondFailure(w, err, op)
		return store.Simulation{}, false
	}
	return sim, true
}
