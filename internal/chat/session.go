// Package chat holds the conversation state shared by every surface: the
// transcript, the pending follow-up input and the in-flight guard.
package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/diogo/kondate/internal/api"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
)

// State is the conversation mode
type State int

const (
	// Idle means no transcript exists yet
	Idle State = iota
	// Submitting means a request to the model is outstanding
	Submitting
	// Active means a recipe exists and follow-ups can be sent
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Precondition refusals. The endpoint is never called when one is returned.
var (
	ErrBusy          = errors.New("a request is already in flight")
	ErrNoIngredients = errors.New("no named ingredient to submit")
	ErrEmptyMessage  = errors.New("follow-up message is empty")
	ErrNoRecipe      = errors.New("no recipe to follow up on")
)

// Session is one conversation about one ingredient list
type Session struct {
	client api.GeminiClientInterface
	log    logrus.FieldLogger

	mu       sync.RWMutex // Protects everything below
	messages []models.Message
	input    string
	inFlight bool
	// generation is bumped by Reset so a reply that lands afterwards is dropped
	generation uint64
}

// NewSession creates an idle session talking to client
func NewSession(client api.GeminiClientInterface, log logrus.FieldLogger) *Session {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Session{client: client, log: log}
}

// beginLocked marks a request as in flight and returns the generation it belongs to
// MUST be called with s.mu.Lock() held
func (s *Session) beginLocked() uint64 {
	s.inFlight = true
	return s.generation
}

// finish clears the in-flight flag unless a Reset already did
func (s *Session) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.inFlight = false
	}
}

// SubmitIngredients requests the first recipe for the editor's rows.
// On success the transcript becomes exactly [ingredient list, reply].
// A failed request is logged and leaves the transcript untouched.
func (s *Session) SubmitIngredients(ctx context.Context, editor *recipe.Editor) error {
	if !editor.HasNamedIngredient() {
		return ErrNoIngredients
	}
	list := editor.BuildPromptIngredientsList()

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	gen := s.beginLocked()
	s.mu.Unlock()
	defer s.finish(gen)

	s.log.WithField("ingredients", list).Debug("requesting recipe")

	reply, err := s.client.GenerateContent(ctx, models.SingleTurn(recipe.BuildPrompt(list)))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "submit",
			"error":     err,
		}).Warn("model request failed")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.log.WithField("operation", "submit").Debug("discarding reply after reset")
		return nil
	}
	s.messages = []models.Message{
		{Role: models.RoleUser, Text: list, IsIngredientList: true},
		{Role: models.RoleAssistant, Text: reply.Text()},
	}
	return nil
}

// SendFollowUp appends text as a user message and resends the whole transcript.
// The message stays in the transcript even when the request fails; the
// pending input is only cleared on success.
func (s *Session) SendFollowUp(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	if len(s.messages) == 0 {
		s.mu.Unlock()
		return ErrNoRecipe
	}
	s.messages = append(s.messages, models.Message{Role: models.RoleUser, Text: text})
	req := models.MultiTurn(s.messages)
	gen := s.beginLocked()
	s.mu.Unlock()
	defer s.finish(gen)

	s.log.WithField("turns", len(req.Contents)).Debug("sending follow-up")

	reply, err := s.client.GenerateContent(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "follow-up",
			"error":     err,
		}).Warn("model request failed")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.log.WithField("operation", "follow-up").Debug("discarding reply after reset")
		return nil
	}
	s.messages = append(s.messages, models.Message{Role: models.RoleAssistant, Text: reply.Text()})
	s.input = ""
	return nil
}

// Reset clears the transcript, the pending input and the in-flight flag
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.input = ""
	s.inFlight = false
	s.generation++
}

// State returns the current conversation mode
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.inFlight:
		return Submitting
	case len(s.messages) > 0:
		return Active
	default:
		return Idle
	}
}

// Loading reports whether a request is in flight
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}

// Messages returns a copy of the transcript
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.messages == nil {
		return nil
	}
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Input returns the pending follow-up text
func (s *Session) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// SetInput stores the pending follow-up text
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// LastReply returns the most recent assistant message, if any
func (s *Session) LastReply() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == models.RoleAssistant {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}
