package web

import (
	"html/template"

	"github.com/sirupsen/logrus"

	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/render"
)

// MessageView is one transcript entry as served to the browser
type MessageView struct {
	Role             models.Role   `json:"role"`
	Label            string        `json:"label"`
	Text             string        `json:"text"`
	HTML             template.HTML `json:"html"`
	IsIngredientList bool          `json:"isIngredientList"`
}

// SessionView is the full page state
type SessionView struct {
	Model     string              `json:"model"`
	Rows      []models.Ingredient `json:"rows"`
	Messages  []MessageView       `json:"messages"`
	State     string              `json:"state"`
	Loading   bool                `json:"loading"`
	Input     string              `json:"input"`
	CanSubmit bool                `json:"canSubmit"`
}

func (s *Server) view(log logrus.FieldLogger) SessionView {
	loading := s.session.Loading()
	msgs := s.session.Messages()

	v := SessionView{
		Model:     s.modelName,
		Rows:      s.editor.Rows(),
		Messages:  make([]MessageView, 0, len(msgs)),
		State:     s.session.State().String(),
		Loading:   loading,
		Input:     s.session.Input(),
		CanSubmit: !loading && s.editor.HasNamedIngredient(),
	}

	for _, msg := range msgs {
		v.Messages = append(v.Messages, MessageView{
			Role:             msg.Role,
			Label:            msg.Label(),
			Text:             msg.Text,
			HTML:             messageHTML(log, msg),
			IsIngredientList: msg.IsIngredientList,
		})
	}
	return v
}

// messageHTML renders assistant markdown; user text is escaped verbatim
func messageHTML(log logrus.FieldLogger, msg models.Message) template.HTML {
	if msg.IsUser() {
		return template.HTML(template.HTMLEscapeString(msg.Text))
	}
	out, err := render.MarkdownHTML(msg.Text)
	if err != nil {
		log.WithField("error", err).Warn("markdown render failed, serving escaped text")
		return template.HTML(template.HTMLEscapeString(msg.Text))
	}
	return template.HTML(out)
}
