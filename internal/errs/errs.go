// Package errs defines the failures returned by the recommendation core.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned for malformed argument shapes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidNutrient matches every *InvalidNutrientError via errors.Is.
	ErrInvalidNutrient = errors.New("invalid nutrient")

	// ErrNoResults is returned when filtering leaves nothing to recommend.
	ErrNoResults = errors.New("no results")

	// ErrEmptyIngredients is returned when recipe ranking gets no ingredients.
	ErrEmptyIngredients = errors.New("no ingredients supplied")

	// ErrModelUnavailable is returned when the embedding capability cannot serve a request.
	ErrModelUnavailable = errors.New("embedding model unavailable")
)

// InvalidNutrientError lists the names that are not part of a nutrient schema.
type InvalidNutrientError struct {
	Names []string
	Valid []string
}

func (e *InvalidNutrientError) Error() string {
	msg := fmt.Sprintf("invalid nutrients: %s", strings.Join(e.Names, ", "))
	if len(e.Valid) > 0 {
		msg += ". Choose from: " + strings.Join(e.Valid, ", ")
	}
	return msg
}

// Is reports whether target is ErrInvalidNutrient.
func (e *InvalidNutrientError) Is(target error) bool {
	return target == ErrInvalidNutrient
}

// NoResultsForCategory wraps ErrNoResults with the category that produced the empty set.
func NoResultsForCategory(category string) error {
	return fmt.Errorf("no match for category %q: %w", category, ErrNoResults)
}
