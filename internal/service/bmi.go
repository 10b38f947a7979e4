package service

import (
	"fmt"
	"math"

	"github.com/culinary-compass/backend/internal/errs"
)

// CalculateBMI returns weight / height², rounded to two decimals.
func CalculateBMI(weightKg, heightM float64) (float64, error) {
	if !(weightKg > 0) || !(heightM > 0) || math.IsInf(weightKg, 0) || math.IsInf(heightM, 0) {
		return 0, fmt.Errorf("weight and height must be positive: %w", errs.ErrInvalidInput)
	}
	return math.Round(weightKg/(heightM*heightM)*100) / 100, nil
}

// BMICategory returns the advisory category for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight - Increase nutrient-dense meals."
	case bmi < 25:
		return "Normal weight - Maintain a balanced diet and exercise."
	case bmi < 30:
		return "Overweight - Focus on portion control and active lifestyle."
	default:
		return "Obese - Consider a structured diet and exercise plan."
	}
}
