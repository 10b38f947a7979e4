package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/nutrient"
)

// ReadFoods reads the food export. Nutrient columns may use either the
// canonical schema names or the export's own spellings.
func ReadFoods(r io.Reader) ([]*model.Food, error) {
	t, err := newTable(r, "description", "main_category", "sub_category")
	if err != nil {
		return nil, fmt.Errorf("failed to open food dataset: %w", err)
	}

	columns := make(map[string]string, nutrient.FoodSchema.Len())
	for column := range t.columns {
		name := nutrient.CanonicalName(column)
		if !nutrient.FoodSchema.Contains(name) {
			continue
		}
		if other, dup := columns[name]; dup {
			return nil, fmt.Errorf("food dataset columns %q and %q both map to nutrient %s", min(column, other), max(column, other), name)
		}
		columns[name] = column
	}
	var missing []string
	for _, name := range nutrient.FoodSchema.Names() {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("food dataset is missing nutrient columns: %v", missing)
	}

	var foods []*model.Food
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		f := &model.Food{
			Description:  rec.get("description"),
			MainCategory: rec.get("main_category"),
			SubCategory:  rec.get("sub_category"),
		}
		for name, column := range columns {
			v, err := rec.float(column)
			if err != nil {
				return nil, err
			}
			if err := f.SetNutrient(name, v); err != nil {
				return nil, err
			}
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.line, err)
		}
		foods = append(foods, f)
	}
	return foods, nil
}
