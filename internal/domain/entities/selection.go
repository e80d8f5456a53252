package entities

import (
	"fmt"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain"
)

// SelectionState is the position of a browsing session in the
// category → subcategory navigation.
type SelectionState int

const (
	StateNoCategory SelectionState = iota
	StateCategorySelected
	StateSubcategorySelected
)

func (s SelectionState) String() string {
	switch s {
	case StateNoCategory:
		return "no_category"
	case StateCategorySelected:
		return "category_selected"
	case StateSubcategorySelected:
		return "subcategory_selected"
	default:
		return fmt.Sprintf("SelectionState(%d)", int(s))
	}
}

// Selection is the currently browsed (category, subcategory) pair of one
// session. It is a value: transitions return a new Selection and leave the
// receiver untouched.
type Selection struct {
	Category    Category
	Subcategory Subcategory
	state       SelectionState
}

// State returns the current state of the selection.
func (s Selection) State() SelectionState {
	return s.state
}

// HasSubcategory reports whether a word list can be resolved from s.
func (s Selection) HasSubcategory() bool {
	return s.state == StateSubcategorySelected
}

// WithCategory moves to CategorySelected from any state and clears the subcategory.
func (s Selection) WithCategory(c Category) Selection {
	return Selection{
		Category: c,
		state:    StateCategorySelected,
	}
}

// WithSubcategory moves to SubcategorySelected. It fails with
// domain.ErrInvalidSelection when no category is selected or sub belongs to
// another category.
func (s Selection) WithSubcategory(sub Subcategory) (Selection, error) {
	if s.state == StateNoCategory {
		return s, fmt.Errorf("%w: choose a category first", domain.ErrInvalidSelection)
	}
	if sub.CategoryID != s.Category.ID {
		return s, fmt.Errorf("%w: subcategory %d does not belong to category %d",
			domain.ErrInvalidSelection, sub.ID, s.Category.ID)
	}

	next := s
	next.Subcategory = sub
	next.state = StateSubcategorySelected
	return next, nil
}

// Title renders the selection as "category / subcategory".
func (s Selection) Title() string {
	switch s.state {
	case StateCategorySelected:
		return s.Category.Name
	case StateSubcategorySelected:
		return s.Category.Name + " / " + s.Subcategory.Name
	default:
		return ""
	}
}
