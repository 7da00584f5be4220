package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/export"
	"github.com/diogo/kondate/internal/recipe"
)

// Error codes carried in the JSON error envelope
const (
	CodeBadRequest    = "bad_request"
	CodeNotFound      = "not_found"
	CodeBusy          = "busy"
	CodeNoIngredients = "no_ingredients"
	CodeEmptyMessage  = "empty_message"
	CodeNoRecipe      = "no_recipe"
	CodeEmpty         = "empty_transcript"
	CodeInternal      = "internal"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type updateIngredientRequest struct {
	Name   *string `json:"name"`
	Amount *string `json:"amount"`
}

type chatRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeSessionError maps a session precondition refusal to a status code
func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger(r)
	switch {
	case errors.Is(err, chat.ErrBusy):
		writeError(w, http.StatusConflict, CodeBusy, err.Error())
	case errors.Is(err, chat.ErrNoRecipe):
		writeError(w, http.StatusConflict, CodeNoRecipe, err.Error())
	case errors.Is(err, chat.ErrNoIngredients):
		writeError(w, http.StatusBadRequest, CodeNoIngredients, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, CodeEmptyMessage, err.Error())
	default:
		log.WithField("error", err).Error("unexpected session error")
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

func (s *Server) writeView(w http.ResponseWriter, r *http.Request, status int) {
	writeJSON(w, status, s.view(s.logger(r)))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.view(log)); err != nil {
		log.WithField("error", err).Error("failed to render index")
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, r, http.StatusOK)
}

func (s *Server) handleAddIngredient(w http.ResponseWriter, r *http.Request) {
	row := s.editor.Add()
	s.logger(r).WithField("id", row.ID).Debug("ingredient row added")
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleUpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.editor.Row(id); !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, "ingredient not found")
		return
	}

	var req updateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if req.Amount != nil && !isDigits(*req.Amount) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "amount must contain digits only")
		return
	}

	if req.Name != nil {
		s.editor.Update(id, recipe.FieldName, *req.Name)
	}
	if req.Amount != nil {
		s.editor.Update(id, recipe.FieldAmount, *req.Amount)
	}

	row, ok := s.editor.Row(id)
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, "ingredient not found")
		return
	}
	s.logger(r).WithFields(logrus.Fields{
		"id":     id,
		"name":   row.Name,
		"amount": row.Amount,
	}).Debug("ingredient row updated")
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleRemoveIngredient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.editor.Remove(id) {
		writeError(w, http.StatusNotFound, CodeNotFound, "ingredient not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// A model request outlives the HTTP request that started it; the reply shows
// up on the next page load.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.session.SubmitIngredients(context.WithoutCancel(r.Context()), s.editor); err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	s.writeView(w, r, http.StatusOK)
}

func (s *Server) handleFollowUp(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}

	s.session.SetInput(req.Text)
	if err := s.session.SendFollowUp(context.WithoutCancel(r.Context()), req.Text); err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	s.writeView(w, r, http.StatusOK)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	s.logger(r).Info("session reset")
	s.writeView(w, r, http.StatusOK)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	now := time.Now()
	data, err := export.Render(export.Transcript{
		Model:      s.modelName,
		ExportedAt: now,
		Messages:   s.session.Messages(),
	}, format)
	if errors.Is(err, export.ErrEmptyTranscript) {
		writeError(w, http.StatusConflict, CodeEmpty, err.Error())
		return
	}
	if err != nil {
		s.logger(r).WithField("error", err).Error("export failed")
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(now, format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// isDigits reports whether value is empty or consists of ASCII digits
func isDigits(value string) bool {
	return strings.IndexFunc(value, func(r rune) bool {
		return r < '0' || r > '9'
	}) < 0
}
