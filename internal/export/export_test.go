package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diogo/kondate/internal/models"
)

func sampleTranscript() Transcript {
	return Transcript{
		Model:      "gemini-1.5-flash",
		ExportedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Messages: []models.Message{
			{Role: models.RoleUser, Text: "onion 200g、carrot g", IsIngredientList: true},
			{Role: models.RoleAssistant, Text: "## 1. **Onion Soup**\nBoil it."},
			{Role: models.RoleUser, Text: "vegan?"},
			{Role: models.RoleAssistant, Text: "Yes."},
		},
	}
}

func TestToMarkdown(t *testing.T) {
	md := ToMarkdown(sampleTranscript())

	wants := []string{
		"# Onion Soup\n",
		"**Model:** gemini-1.5-flash",
		"**Exported:** 2026-01-02 15:04:05",
		"**Messages:** 4",
		"## 食材\n\n- onion 200g\n- carrot g\n",
		"## あなた\n\nvegan?",
		"## シェフ\n\nYes.",
	}
	for _, want := range wants {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.HasSuffix(md, "---\n\n") {
		t.Error("no separator after the last message")
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTranscript())
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var doc struct {
		Title       string   `json:"title"`
		Model       string   `json:"model"`
		ExportedAt  string   `json:"exported_at"`
		Ingredients []string `json:"ingredients"`
		Messages    []struct {
			Role             string `json:"role"`
			Text             string `json:"text"`
			IsIngredientList bool   `json:"isIngredientList"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc.Title != "Onion Soup" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Ingredients) != 2 || doc.Ingredients[1] != "carrot g" {
		t.Errorf("ingredients = %v", doc.Ingredients)
	}
	if len(doc.Messages) != 4 || !doc.Messages[0].IsIngredientList || doc.Messages[1].Role != "assistant" {
		t.Errorf("messages = %+v", doc.Messages)
	}
	if !strings.HasPrefix(doc.ExportedAt, "2026-01-02T15:04:05") {
		t.Errorf("exported_at = %q", doc.ExportedAt)
	}
}

func TestRender_Empty(t *testing.T) {
	for _, f := range []Format{FormatMarkdown, FormatJSON} {
		if _, err := Render(Transcript{Model: "m"}, f); !errors.Is(err, ErrEmptyTranscript) {
			t.Errorf("Render(%s) err = %v, want ErrEmptyTranscript", f, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{" json ", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		msgs []models.Message
		want string
	}{
		{"no reply", []models.Message{{Role: models.RoleUser, Text: "x", IsIngredientList: true}}, "献立"},
		{"skips blank lines", []models.Message{{Role: models.RoleAssistant, Text: "\n\n# 肉じゃが\n..."}}, "肉じゃが"},
		{"keeps leading digits of the dish", []models.Message{{Role: models.RoleAssistant, Text: "# 3色丼\n..."}}, "3色丼"},
		{"strips numbered and bold markers", []models.Message{{Role: models.RoleAssistant, Text: "1. **親子丼**"}}, "親子丼"},
		{"strips bullet markers", []models.Message{{Role: models.RoleAssistant, Text: "- 2品目の副菜"}}, "2品目の副菜"},
		{"long line truncated", []models.Message{{Role: models.RoleAssistant, Text: strings.Repeat("あ", 70)}}, strings.Repeat("あ", 60) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Transcript{Messages: tt.msgs}).Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if got := FileName(at, FormatJSON); got != "kondate-20260102-150405.json" {
		t.Errorf("FileName = %q", got)
	}
	if FormatMarkdown.Extension() != "md" {
		t.Error("markdown extension should be md")
	}
	if FormatJSON.ContentType() != "application/json" {
		t.Errorf("ContentType = %q", FormatJSON.ContentType())
	}
}
