package model

import (
	"fmt"

	"github.com/culinary-compass/backend/internal/nutrient"
)

// Food is a row of the reference food dataset. Nutrient columns follow nutrient.FoodSchema.
type Food struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	MainCategory string  `gorm:"size:100;index" json:"main_category"`
	SubCategory  string  `gorm:"size:100" json:"sub_category"`
	Calcium      float64 `gorm:"column:calcium;not null;default:0" json:"calcium"`
	Potassium    float64 `gorm:"column:potassium;not null;default:0" json:"potassium"`
	Zinc         float64 `gorm:"column:zinc;not null;default:0" json:"zinc"`
	VitaminC     float64 `gorm:"column:vitamin_c;not null;default:0" json:"vitamin_C"`
	Iron         float64 `gorm:"column:iron;not null;default:0" json:"iron"`
	Magnesium    float64 `gorm:"column:magnesium;not null;default:0" json:"magnesium"`
	Phosphorus   float64 `gorm:"column:phosphorus;not null;default:0" json:"phosphorus"`
	Sodium       float64 `gorm:"column:sodium;not null;default:0" json:"sodium"`
	Copper       float64 `gorm:"column:copper;not null;default:0" json:"copper"`
	VitaminE     float64 `gorm:"column:vitamin_e;not null;default:0" json:"vitamin_E"`
	Thiamin      float64 `gorm:"column:thiamin;not null;default:0" json:"thiamin"`
	Riboflavin   float64 `gorm:"column:riboflavin;not null;default:0" json:"riboflavin"`
	Cholesterol  float64 `gorm:"column:cholesterol;not null;default:0" json:"cholesterol"`
	Niacin       float64 `gorm:"column:niacin;not null;default:0" json:"niacin"`
	VitaminB6    float64 `gorm:"column:vitamin_b6;not null;default:0" json:"vitamin_B6"`
	CholineTotal float64 `gorm:"column:choline_total;not null;default:0" json:"choline_total"`
	VitaminA     float64 `gorm:"column:vitamin_a;not null;default:0" json:"vitamin_A"`
	VitaminK     float64 `gorm:"column:vitamin_k;not null;default:0" json:"vitamin_K"`
	FolateTotal  float64 `gorm:"column:folate_total;not null;default:0" json:"folate_total"`
	VitaminB12   float64 `gorm:"column:vitamin_b12;not null;default:0" json:"vitamin_B12"`
	Selenium     float64 `gorm:"column:selenium;not null;default:0" json:"selenium"`
	VitaminD     float64 `gorm:"column:vitamin_d;not null;default:0" json:"vitamin_D"`
}

func (Food) TableName() string {
	return "foods"
}

// nutrientFields returns pointers to the nutrient columns in nutrient.FoodSchema order.
func (f *Food) nutrientFields() []*float64 {
	return []*float64{
		&f.Calcium, &f.Potassium, &f.Zinc, &f.VitaminC, &f.Iron, &f.Magnesium,
		&f.Phosphorus, &f.Sodium, &f.Copper, &f.VitaminE, &f.Thiamin, &f.Riboflavin,
		&f.Cholesterol, &f.Niacin, &f.VitaminB6, &f.CholineTotal, &f.VitaminA, &f.VitaminK,
		&f.FolateTotal, &f.VitaminB12, &f.Selenium, &f.VitaminD,
	}
}

// NutrientVector returns the food's nutrient values in nutrient.FoodSchema order.
func (f *Food) NutrientVector() []float64 {
	fields := f.nutrientFields()
	vec := make([]float64, len(fields))
	for i, p := range fields {
		vec[i] = *p
	}
	return vec
}

// SetNutrient assigns a nutrient value by schema name.
func (f *Food) SetNutrient(name string, value float64) error {
	i, ok := nutrient.FoodSchema.Index(name)
	if !ok {
		return fmt.Errorf("unknown food nutrient %q", name)
	}
	*f.nutrientFields()[i] = value
	return nil
}

// Validate checks the invariants a food row must satisfy before it is indexed.
func (f *Food) Validate() error {
	if f.Description == "" {
		return fmt.Errorf("food %d: description is required", f.ID)
	}
	if f.MainCategory == "" {
		return fmt.Errorf("food %q: main category is required", f.Description)
	}
	return nil
}
