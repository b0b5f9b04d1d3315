package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poforge/poforge/internal/domain"
)

// maxEnvelopeBody caps inbound envelope size.
const maxEnvelopeBody = 1 << 20 // 1 MB

// Processor handles the task operations behind the protocol endpoints.
type Processor interface {
	SendTask(ctx context.Context, msg Message) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CancelTask(ctx context.Context, id string) (*Task, error)
}

// Handler serves the A2A protocol endpoints.
type Handler struct {
	card      AgentCard
	processor Processor
}

// NewHandler creates an A2A handler serving the given card and processor.
func NewHandler(card AgentCard, processor Processor) *Handler {
	return &Handler{card: card, processor: processor}
}

// MountRoutes registers A2A routes on the given chi router.
// These are mounted at the root level.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/.well-known/agent.json", h.handleAgentCard)
	r.Post("/a2a/tasks", h.handleSendTask)
	r.Get("/a2a/tasks/{id}", h.handleGetTask)
	r.Post("/a2a/tasks/{id}/cancel", h.handleCancelTask)
}

func (h *Handler) handleAgentCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.card)
}

func (h *Handler) handleSendTask(w http.ResponseWriter, r *http.Request) {
	var msg Message
	r.Body = http.MaxBytesReader(w, r.Body, maxEnvelopeBody)
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.processor.SendTask(r.Context(), msg)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocument) {
			writeError(w, http.StatusBadRequest, domain.ErrNoDocument.Error())
			return
		}
		slog.Error("send task failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.processor.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		slog.Error("get task failed", "task_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.processor.CancelTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		slog.Error("cancel task failed", "task_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
