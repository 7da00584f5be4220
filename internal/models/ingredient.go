package models

// Ingredient is one editable row of the ingredient form
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"` // grams, free text
}
