// Package nutrient holds the ordered nutrient schemas and the deficiency encoder.
package nutrient

import (
	"fmt"

	"github.com/culinary-compass/backend/internal/errs"
)

// Food deficiency nutrient names, in schema order.
const (
	Calcium      = "calcium"
	Potassium    = "potassium"
	Zinc         = "zinc"
	VitaminC     = "vitamin_C"
	Iron         = "iron"
	Magnesium    = "magnesium"
	Phosphorus   = "phosphorus"
	Sodium       = "sodium"
	Copper       = "copper"
	VitaminE     = "vitamin_E"
	Thiamin      = "thiamin"
	Riboflavin   = "riboflavin"
	Cholesterol  = "cholesterol"
	Niacin       = "niacin"
	VitaminB6    = "vitamin_B6"
	CholineTotal = "choline_total"
	VitaminA     = "vitamin_A"
	VitaminK     = "vitamin_K"
	FolateTotal  = "folate_total"
	VitaminB12   = "vitamin_B12"
	Selenium     = "selenium"
	VitaminD     = "vitamin_D"
)

// Recipe nutrient names.
const (
	Calories            = "Calories"
	FatContent          = "FatContent"
	SaturatedFatContent = "SaturatedFatContent"
	CholesterolContent  = "CholesterolContent"
	SodiumContent       = "SodiumContent"
	CarbohydrateContent = "CarbohydrateContent"
	FiberContent        = "FiberContent"
	SugarContent        = "SugarContent"
	ProteinContent      = "ProteinContent"
)

var (
	// FoodSchema is the 22-nutrient feature space of the food neighbor index.
	FoodSchema = MustSchema(
		Calcium, Potassium, Zinc, VitaminC, Iron, Magnesium, Phosphorus, Sodium, Copper,
		VitaminE, Thiamin, Riboflavin, Cholesterol, Niacin, VitaminB6, CholineTotal,
		VitaminA, VitaminK, FolateTotal, VitaminB12, Selenium, VitaminD,
	)

	// RecipeSchema lists every nutrient a recipe record carries.
	RecipeSchema = MustSchema(
		Calories, FatContent, SaturatedFatContent, CholesterolContent, SodiumContent,
		CarbohydrateContent, FiberContent, SugarContent, ProteinContent,
	)

	// RecipeSimilaritySchema is the subset compared when scoring recipe nutrient profiles.
	RecipeSimilaritySchema = MustSchema(
		Calories, FatContent, CarbohydrateContent, FiberContent, SugarContent, ProteinContent,
	)
)

// Schema is an ordered, immutable set of nutrient names.
type Schema struct {
	names     []string
	positions map[string]int
}

// NewSchema builds a schema from distinct, non-empty names.
func NewSchema(names ...string) (Schema, error) {
	positions := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return Schema{}, fmt.Errorf("nutrient name at position %d is empty", i)
		}
		if _, dup := positions[name]; dup {
			return Schema{}, fmt.Errorf("duplicate nutrient name %q", name)
		}
		positions[name] = i
	}
	return Schema{
		names:     append([]string(nil), names...),
		positions: positions,
	}, nil
}

// MustSchema is NewSchema for package-level schemas.
func MustSchema(names ...string) Schema {
	s, err := NewSchema(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of nutrients in the schema.
func (s Schema) Len() int {
	return len(s.names)
}

// Names returns a copy of the schema names in order.
func (s Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Index returns the vector position of name.
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.positions[name]
	return i, ok
}

// Contains reports whether name belongs to the schema.
func (s Schema) Contains(name string) bool {
	_, ok := s.positions[name]
	return ok
}

// Validate returns an *errs.InvalidNutrientError listing every name outside the schema,
// in input order and without repeats.
func (s Schema) Validate(names []string) error {
	var invalid []string
	seen := make(map[string]bool)
	for _, name := range names {
		if s.Contains(name) || seen[name] {
			continue
		}
		seen[name] = true
		invalid = append(invalid, name)
	}
	if len(invalid) > 0 {
		return &errs.InvalidNutrientError{Names: invalid, Valid: s.Names()}
	}
	return nil
}

// Encode maps a set of deficient nutrients to a binary vector in schema order.
// An empty set encodes to the zero vector.
func (s Schema) Encode(deficiencies []string) ([]float64, error) {
	if err := s.Validate(deficiencies); err != nil {
		return nil, err
	}
	vec := make([]float64, len(s.names))
	for _, name := range deficiencies {
		vec[s.positions[name]] = 1
	}
	return vec, nil
}

// Vector lays out values in schema order. Nutrients absent from values are 0;
// keys outside the schema are rejected.
func (s Schema) Vector(values map[string]float64) ([]float64, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	if err := s.Validate(sortedCopy(keys)); err != nil {
		return nil, err
	}
	return s.Project(values), nil
}

// Project lays out values in schema order and ignores keys outside the schema.
func (s Schema) Project(values map[string]float64) []float64 {
	vec := make([]float64, len(s.names))
	for i, name := range s.names {
		vec[i] = values[name]
	}
	return vec
}
