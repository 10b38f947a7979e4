package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/types"
)

const historyListLimit = 100

// HistoryService records finished recommendation sessions per user.
type HistoryService struct {
	store HistoryStore
}

func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Save stores a history entry. BMI and its category are derived from weight
// and height when the request omits them.
func (s *HistoryService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveHistoryRequest) (*model.HistoryEntry, error) {
	bmi := 0.0
	if req.BMI != nil {
		bmi = *req.BMI
	} else {
		var err error
		if bmi, err = CalculateBMI(req.Weight, req.Height); err != nil {
			return nil, err
		}
	}
	category := req.BMICategory
	if category == "" {
		category = BMICategory(bmi)
	}

	entry := &model.HistoryEntry{
		UserID:         userID,
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		WeightKg:       req.Weight,
		HeightM:        req.Height,
		BMI:            bmi,
		BMICategory:    category,
		FoodPreference: req.FoodPreference,
		Deficiencies:   model.JSONBStringArray(req.Deficiencies),
		Recommendation: req.Recommendation,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	return entry, nil
}

// List returns the user's most recent entries, newest first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID) ([]*model.HistoryEntry, error) {
	entries, err := s.store.ListByUser(ctx, userID, historyListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
