// Package recipe holds the ingredient form state and the recipe prompt.
package recipe

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/diogo/kondate/internal/models"
)

// Field names accepted by Editor.Update
const (
	FieldName   = "name"
	FieldAmount = "amount"
)

// InitialRows is the number of blank rows a new editor starts with
const InitialRows = 3

// ListSeparator joins formatted ingredients (full-width comma)
const ListSeparator = "、"

// Editor is an ordered list of ingredient rows addressed by id
type Editor struct {
	mu    sync.RWMutex
	rows  []models.Ingredient
	newID func() string
}

// NewEditor creates an editor with InitialRows blank rows
func NewEditor() *Editor {
	e := &Editor{newID: uuid.NewString}
	for i := 0; i < InitialRows; i++ {
		e.rows = append(e.rows, e.blankRow())
	}
	return e
}

// NewEditorFrom creates an editor holding the given rows. Rows without an id
// get a fresh one.
func NewEditorFrom(rows []models.Ingredient) *Editor {
	e := &Editor{newID: uuid.NewString}
	for _, row := range rows {
		if row.ID == "" {
			row.ID = e.newID()
		}
		e.rows = append(e.rows, row)
	}
	return e
}

func (e *Editor) blankRow() models.Ingredient {
	return models.Ingredient{ID: e.newID()}
}

// Add appends a blank row and returns it
func (e *Editor) Add() models.Ingredient {
	e.mu.Lock()
	defer e.mu.Unlock()

	row := e.blankRow()
	e.rows = append(e.rows, row)
	return row
}

// Remove deletes the row with the given id. Returns false if absent.
func (e *Editor) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, row := range e.rows {
		if row.ID == id {
			e.rows = append(e.rows[:i:i], e.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Update replaces the name or amount of the row with the given id.
// Unknown ids and fields are ignored and reported as false.
func (e *Editor) Update(id, field, value string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.rows {
		if e.rows[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			e.rows[i].Name = value
		case FieldAmount:
			e.rows[i].Amount = value
		default:
			return false
		}
		return true
	}
	return false
}

// Row returns the row with the given id
func (e *Editor) Row(id string) (models.Ingredient, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, row := range e.rows {
		if row.ID == id {
			return row, true
		}
	}
	return models.Ingredient{}, false
}

// Rows returns a copy of all rows in order
func (e *Editor) Rows() []models.Ingredient {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Ingredient, len(e.rows))
	copy(out, e.rows)
	return out
}

// Len returns the number of rows
func (e *Editor) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rows)
}

// HasNamedIngredient reports whether any row has a non-blank name
func (e *Editor) HasNamedIngredient() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, row := range e.rows {
		if strings.TrimSpace(row.Name) != "" {
			return true
		}
	}
	return false
}

// BuildPromptIngredientsList formats every named row as "{name} {amount}g"
// and joins them with ListSeparator. Blank-name rows are skipped.
func (e *Editor) BuildPromptIngredientsList() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	items := make([]string, 0, len(e.rows))
	for _, row := range e.rows {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		items = append(items, row.Name+" "+row.Amount+"g")
	}
	return strings.Join(items, ListSeparator)
}

// ParseArg turns a "name=amount" (or bare "name") argument into a row
func ParseArg(arg string) models.Ingredient {
	name, amount, _ := strings.Cut(arg, "=")
	return models.Ingredient{
		Name:   strings.TrimSpace(name),
		Amount: strings.TrimSpace(amount),
	}
}
