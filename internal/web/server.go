// Package web serves the ingredient form and recipe chat over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
)

// SessionInterface defines the chat session operations needed by the handlers
type SessionInterface interface {
	SubmitIngredients(ctx context.Context, editor *recipe.Editor) error
	SendFollowUp(ctx context.Context, text string) error
	Reset()
	State() chat.State
	Loading() bool
	Messages() []models.Message
	Input() string
	SetInput(text string)
}

// Server owns the single session of a `kondate serve` process
type Server struct {
	session   SessionInterface
	editor    *recipe.Editor
	log       logrus.FieldLogger
	modelName string
}

// NewServer creates a Server around one session and one editor
func NewServer(session SessionInterface, editor *recipe.Editor, modelName string, log logrus.FieldLogger) *Server {
	return &Server{
		session:   session,
		editor:    editor,
		log:       log,
		modelName: modelName,
	}
}

// Router builds the chi route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)

		r.Route("/ingredients", func(r chi.Router) {
			r.Post("/", s.handleAddIngredient)
			r.Patch("/{id}", s.handleUpdateIngredient)
			r.Delete("/{id}", s.handleRemoveIngredient)
		})

		r.Post("/recipe", s.handleSubmit)
		r.Post("/chat", s.handleFollowUp)
		r.Post("/reset", s.handleReset)
		r.Get("/export", s.handleExport)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
