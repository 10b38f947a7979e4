package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/culinary-compass/backend/internal/errs"
)

func TestParseDietaryPreference(t *testing.T) {
	cases := map[string]DietaryPreference{
		"":        PreferenceAny,
		"Any":     PreferenceAny,
		"veg":     PreferenceVeg,
		" VEG ":   PreferenceVeg,
		"Non-Veg": PreferenceNonVeg,
		"non-veg": PreferenceNonVeg,
	}
	for in, want := range cases {
		got, err := ParseDietaryPreference(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDietaryPreference("vegan")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestRecommendationGroupLen(t *testing.T) {
	g := RecommendationGroup{
		{MainCategory: "Veg", SubCategories: []SubCategoryGroup{
			{Name: "Leafy", Foods: []string{"Spinach", "Kale"}},
			{Name: "Root", Foods: []string{"Beet"}},
		}},
		{MainCategory: "Dairy", SubCategories: []SubCategoryGroup{{Name: "Cheese", Foods: []string{"Feta"}}}},
	}
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 0, RecommendationGroup(nil).Len())
}
