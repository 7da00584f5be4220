// Package models contains data types and constants for the recipe assistant.
package models

import "strings"

// Endpoints for the Gemini REST API
const (
	EndpointBase     = "https://generativelanguage.googleapis.com/v1beta"
	ActionGenerate   = "generateContent"
	APIKeyQueryParam = "key"
)

// Model identifies a Gemini model by its REST name
type Model struct {
	Name string
}

// Available models
var (
	Model15Flash = Model{Name: "gemini-1.5-flash"}
	Model15Pro   = Model{Name: "gemini-1.5-pro"}
	Model20Flash = Model{Name: "gemini-2.0-flash"}

	// DefaultModel is the model recipes are requested from
	DefaultModel = Model15Flash
)

// AllModels returns a list of the well-known models
func AllModels() []Model {
	return []Model{Model15Flash, Model15Pro, Model20Flash}
}

// ModelFromName returns a Model by its name. Unknown names are passed
// through so newer models can be used without a release; an empty name
// yields DefaultModel.
func ModelFromName(name string) Model {
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "models/"))
	if name == "" {
		return DefaultModel
	}
	return Model{Name: name}
}

// GenerateURL returns the generateContent URL for the model, without the key
func (m Model) GenerateURL(base string) string {
	if base == "" {
		base = EndpointBase
	}
	return strings.TrimRight(base, "/") + "/models/" + m.Name + ":" + ActionGenerate
}

// DefaultHeaders returns the default headers for generate requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "kondate/0.1",
	}
}
