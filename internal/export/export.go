// Package export renders a recipe conversation as a Markdown or JSON document.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
)

// Format represents the format for exporting conversations
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrEmptyTranscript is returned when there is nothing to export yet
var ErrEmptyTranscript = errors.New("no conversation to export")

// Formats returns the supported format names
func Formats() []string {
	return []string{string(FormatMarkdown), string(FormatJSON)}
}

// ParseFormat accepts "markdown", "md" or "json"; empty means markdown
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/markdown; charset=utf-8"
}

// Extension returns the file extension of the format, without the dot
func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "md"
}

// Transcript is one conversation as handed to the exporter
type Transcript struct {
	Model      string
	ExportedAt time.Time
	Messages   []models.Message
}

// Ingredients returns the items of the submitted ingredient list
func (t Transcript) Ingredients() []string {
	for _, msg := range t.Messages {
		if msg.IsIngredientList {
			return strings.Split(msg.Text, recipe.ListSeparator)
		}
	}
	return nil
}

// listMarker matches an ordered ("1. ") or bullet ("- ") list prefix
var listMarker = regexp.MustCompile(`^(\d+\.|[-*])\s+`)

// Title derives a heading from the first line of the first reply
func (t Transcript) Title() string {
	for _, msg := range t.Messages {
		if msg.Role != models.RoleAssistant {
			continue
		}
		for _, line := range strings.Split(msg.Text, "\n") {
			line = strings.TrimLeft(strings.TrimSpace(line), "#")
			line = listMarker.ReplaceAllString(strings.TrimSpace(line), "")
			line = strings.TrimSpace(strings.Trim(line, "*"))
			if line != "" {
				return truncate(line, 60)
			}
		}
	}
	return "献立"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Render encodes t in the given format
func Render(t Transcript, format Format) ([]byte, error) {
	if len(t.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}
	switch format {
	case FormatJSON:
		return ToJSON(t)
	default:
		return []byte(ToMarkdown(t)), nil
	}
}

// ToMarkdown exports a conversation to Markdown format
func ToMarkdown(t Transcript) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# ")
	sb.WriteString(t.Title())
	sb.WriteString("\n\n")

	// Metadata
	sb.WriteString("**Model:** ")
	sb.WriteString(t.Model)
	sb.WriteString("\n")
	if !t.ExportedAt.IsZero() {
		sb.WriteString("**Exported:** ")
		sb.WriteString(t.ExportedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(t.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range t.Messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Label())
		sb.WriteString("\n\n")

		if msg.IsIngredientList {
			for _, item := range strings.Split(msg.Text, recipe.ListSeparator) {
				sb.WriteString("- ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
		} else {
			sb.WriteString(msg.Text)
			sb.WriteString("\n")
		}

		// Separator between messages (except last)
		if i < len(t.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// jsonMessage is one exported transcript entry
type jsonMessage struct {
	Role             models.Role `json:"role"`
	Text             string      `json:"text"`
	IsIngredientList bool        `json:"isIngredientList,omitempty"`
}

type jsonTranscript struct {
	Title       string        `json:"title"`
	Model       string        `json:"model"`
	ExportedAt  *time.Time    `json:"exported_at,omitempty"`
	Ingredients []string      `json:"ingredients,omitempty"`
	Messages    []jsonMessage `json:"messages"`
}

// ToJSON exports a conversation to indented JSON
func ToJSON(t Transcript) ([]byte, error) {
	doc := jsonTranscript{
		Title:       t.Title(),
		Model:       t.Model,
		Ingredients: t.Ingredients(),
		Messages:    make([]jsonMessage, len(t.Messages)),
	}
	if !t.ExportedAt.IsZero() {
		at := t.ExportedAt
		doc.ExportedAt = &at
	}
	for i, msg := range t.Messages {
		doc.Messages[i] = jsonMessage{
			Role:             msg.Role,
			Text:             msg.Text,
			IsIngredientList: msg.IsIngredientList,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileName suggests a download name such as kondate-20260102-150405.md
func FileName(at time.Time, format Format) string {
	return fmt.Sprintf("kondate-%s.%s", at.Format("20060102-150405"), format.Extension())
}
