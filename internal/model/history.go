package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryEntry is a saved recommendation session for a user.
type HistoryEntry struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt      time.Time        `gorm:"index" json:"created_at"`
	Name           string           `gorm:"size:255;not null" json:"name"`
	Age            int              `json:"age"`
	Gender         string           `gorm:"size:50" json:"gender"`
	WeightKg       float64          `json:"weight"`
	HeightM        float64          `json:"height"`
	BMI            float64          `json:"bmi"`
	BMICategory    string           `gorm:"size:255" json:"bmi_category"`
	FoodPreference string           `gorm:"size:20" json:"food_preference"`
	Deficiencies   JSONBStringArray `gorm:"type:jsonb" json:"deficiencies"`
	Recommendation string           `gorm:"type:text" json:"recommendation"`
}

// TableName specifies the table name for HistoryEntry
func (HistoryEntry) TableName() string {
	return "recommendation_history"
}

func (h *HistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
