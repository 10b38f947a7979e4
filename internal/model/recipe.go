package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/culinary-compass/backend/internal/nutrient"
)

// DietaryCategory classifies a recipe as vegetarian or not.
type DietaryCategory string

const (
	DietVeg    DietaryCategory = "Veg"
	DietNonVeg DietaryCategory = "Non-Veg"
)

// Valid reports whether c is one of the known categories.
func (c DietaryCategory) Valid() bool {
	return c == DietVeg || c == DietNonVeg
}

type Recipe struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt            time.Time        `json:"-"`
	Position             int              `gorm:"not null;index" json:"-"`
	Name                 string           `gorm:"size:255;not null" json:"name"`
	CookTime             string           `gorm:"size:50" json:"cook_time"`
	Images               JSONBStringArray `gorm:"type:jsonb" json:"images"`
	Category             string           `gorm:"size:100" json:"category"`
	Keywords             JSONBStringArray `gorm:"type:jsonb" json:"keywords"`
	IngredientQuantities JSONBStringArray `gorm:"type:jsonb" json:"ingredient_quantities"`
	IngredientParts      JSONBStringArray `gorm:"type:jsonb" json:"ingredient_parts"`
	Calories             float64          `gorm:"not null;default:0" json:"Calories"`
	FatContent           float64          `gorm:"not null;default:0" json:"FatContent"`
	SaturatedFatContent  float64          `gorm:"not null;default:0" json:"SaturatedFatContent"`
	CholesterolContent   float64          `gorm:"not null;default:0" json:"CholesterolContent"`
	SodiumContent        float64          `gorm:"not null;default:0" json:"SodiumContent"`
	CarbohydrateContent  float64          `gorm:"not null;default:0" json:"CarbohydrateContent"`
	FiberContent         float64          `gorm:"not null;default:0" json:"FiberContent"`
	SugarContent         float64          `gorm:"not null;default:0" json:"SugarContent"`
	ProteinContent       float64          `gorm:"not null;default:0" json:"ProteinContent"`
	Instructions         JSONBStringArray `gorm:"type:jsonb" json:"instructions"`
	DietaryCategory      DietaryCategory  `gorm:"size:10;not null;index" json:"dietary_category"`
	EmbeddingModel       string           `gorm:"size:100;not null;index" json:"-"`
	IngredientEmbedding  pgvector.Vector  `gorm:"type:vector" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when the caller has not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Nutrients returns the recipe's nutrient values keyed by nutrient.RecipeSchema names.
func (r *Recipe) Nutrients() map[string]float64 {
	return map[string]float64{
		nutrient.Calories:            r.Calories,
		nutrient.FatContent:          r.FatContent,
		nutrient.SaturatedFatContent: r.SaturatedFatContent,
		nutrient.CholesterolContent:  r.CholesterolContent,
		nutrient.SodiumContent:       r.SodiumContent,
		nutrient.CarbohydrateContent: r.CarbohydrateContent,
		nutrient.FiberContent:        r.FiberContent,
		nutrient.SugarContent:        r.SugarContent,
		nutrient.ProteinContent:      r.ProteinContent,
	}
}

// SetNutrient assigns a nutrient value by nutrient.RecipeSchema name.
func (r *Recipe) SetNutrient(name string, value float64) error {
	switch name {
	case nutrient.Calories:
		r.Calories = value
	case nutrient.FatContent:
		r.FatContent = value
	case nutrient.SaturatedFatContent:
		r.SaturatedFatContent = value
	case nutrient.CholesterolContent:
		r.CholesterolContent = value
	case nutrient.SodiumContent:
		r.SodiumContent = value
	case nutrient.CarbohydrateContent:
		r.CarbohydrateContent = value
	case nutrient.FiberContent:
		r.FiberContent = value
	case nutrient.SugarContent:
		r.SugarContent = value
	case nutrient.ProteinContent:
		r.ProteinContent = value
	default:
		return fmt.Errorf("unknown recipe nutrient %q", name)
	}
	return nil
}

// Validate checks a recipe row before it joins the ranking corpus.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe at position %d: name is required", r.Position)
	}
	if !r.DietaryCategory.Valid() {
		return fmt.Errorf("recipe %q: invalid dietary category %q", r.Name, r.DietaryCategory)
	}
	if len(r.IngredientEmbedding.Slice()) == 0 {
		return fmt.Errorf("recipe %q: ingredient embedding is empty", r.Name)
	}
	return nil
}
