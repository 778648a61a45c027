// Package httpapi exposes the assistant over HTTP. Conversations are
// resources: queries are posted to them, their history can be fetched and
// they can be deleted or reset.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helioscommand/helios/pkg/domain"
)

// Assistant is the conversational surface the server fronts.
type Assistant interface {
	Ask(ctx context.Context, conversationID, query string) (string, error)
	History(ctx context.Context, conversationID string) ([]domain.Turn, error)
	Reset(ctx context.Context, conversationID string) error
	Delete(ctx context.Context, conversationID string) error
}

// Server handles the conversation routes.
type Server struct {
	assistant Assistant
	logger    *slog.Logger
}

// NewHandler builds the router: conversation routes, a health probe and the
// prometheus scrape endpoint.
func NewHandler(assistant Assistant, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{assistant: assistant, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/conversations", func(r chi.Router) {
		r.Post("/", s.createConversation)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/query", s.query)
			r.Get("/", s.history)
			r.Post("/reset", s.reset)
			r.Delete("/", s.remove)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
}

type createResponse struct {
	ConversationID string `json:"conversation_id"`
}

type historyResponse struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []domain.Turn `json:"messages"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createConversation mints a fresh conversation ID. State is created lazily
// on the first query.
func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, createResponse{ConversationID: uuid.NewString()})
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body queryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	response, err := s.assistant.Ask(r.Context(), id, body.Query)
	if err != nil {
		s.logger.Error("query failed", "conversation", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{ConversationID: id, Response: response})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	turns, err := s.assistant.History(r.Context(), id)
	if errors.Is(err, domain.ErrConversationNotFound) {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("history failed", "conversation", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{ConversationID: id, Messages: turns})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.assistant.Reset(r.Context(), id)
	if errors.Is(err, domain.ErrConversationNotFound) {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("reset failed", "conversation", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.assistant.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete failed", "conversation", id, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
