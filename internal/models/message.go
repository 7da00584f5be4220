package models

// Role is the author of a transcript message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one transcript entry
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	// IsIngredientList marks the synthetic first user message that restates
	// the submitted ingredients. Display only.
	IsIngredientList bool `json:"isIngredientList"`
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// Label returns the display label for the message role
func (m Message) Label() string {
	switch {
	case m.Role == RoleUser && m.IsIngredientList:
		return "食材"
	case m.Role == RoleUser:
		return "あなた"
	default:
		return "シェフ"
	}
}

// Part is one text fragment of a request or response content entry
type Part struct {
	Text string `json:"text"`
}

// Content is one entry of the request "contents" array
type Content struct {
	Role  Role   `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest is the JSON body of a generateContent call
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// SingleTurn builds a request with one role-less entry holding the prompt
func SingleTurn(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}

// MultiTurn builds a request with one entry per message, in order
func MultiTurn(messages []Message) GenerateRequest {
	contents := make([]Content, 0, len(messages))
	for _, msg := range messages {
		contents = append(contents, Content{
			Role:  msg.Role,
			Parts: []Part{{Text: msg.Text}},
		})
	}
	return GenerateRequest{Contents: contents}
}
