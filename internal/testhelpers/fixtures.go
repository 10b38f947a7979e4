package testhelpers

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/service"
)

// Fixture embedding settings. Recipe embeddings are built with
// service.HashEmbed, so a HashingEmbeddingService with the same width
// produces comparable queries.
const (
	FixtureModel      = service.ModelMiniLM
	FixtureDimensions = 384
)

// Foods returns a small food dataset. For an iron+calcium deficiency the
// five nearest foods are, in order: Spinach, Tofu, Sardines, Lentils, Milk.
func Foods() []*model.Food {
	return []*model.Food{
		{Description: "Spinach, raw", MainCategory: "Veg", SubCategory: "Leafy Greens", Calcium: 1, Iron: 1},
		{Description: "Tofu, firm", MainCategory: "Veg", SubCategory: "Legumes", Calcium: 1, Iron: 0.8},
		{Description: "Sardines, canned", MainCategory: "Seafood", SubCategory: "Fish", Calcium: 1, Iron: 1.5},
		{Description: "Lentils, boiled", MainCategory: "Veg", SubCategory: "Legumes", Calcium: 0.3, Iron: 1},
		{Description: "Beef liver", MainCategory: "Meat", SubCategory: "Offal", Iron: 2, VitaminA: 1},
		{Description: "Milk, whole", MainCategory: "Dairy", SubCategory: "Milk", Calcium: 1.2, VitaminD: 1},
		{Description: "Orange", MainCategory: "Veg", SubCategory: "Fruit", VitaminC: 2},
		{Description: "Chicken breast", MainCategory: "Meat", SubCategory: "Poultry", Zinc: 1, Niacin: 2},
	}
}

type recipeFixture struct {
	name     string
	category model.DietaryCategory
	parts    []string
	// Calories, Fat, Carbohydrate, Fiber, Sugar, Protein
	nutrients [6]float64
}

var recipeFixtures = []recipeFixture{
	{"Cheese Omelette", model.DietVeg, []string{"egg", "cheese", "butter"}, [6]float64{320, 24, 2, 0, 1, 20}},
	{"Chicken Curry", model.DietNonVeg, []string{"chicken", "onion", "tomato", "garam masala"}, [6]float64{450, 20, 15, 3, 6, 40}},
	{"Paneer Tikka", model.DietVeg, []string{"paneer", "yogurt", "bell pepper", "cheese"}, [6]float64{380, 22, 12, 2, 5, 24}},
	{"Vegetable Stir Fry", model.DietVeg, []string{"broccoli", "carrot", "soy sauce", "garlic"}, [6]float64{180, 7, 25, 6, 8, 6}},
	{"Egg Fried Rice", model.DietVeg, []string{"egg", "rice", "peas", "soy sauce"}, [6]float64{410, 12, 60, 3, 2, 14}},
	{"Salmon Salad", model.DietNonVeg, []string{"salmon", "lettuce", "cheese", "lemon"}, [6]float64{350, 20, 8, 3, 3, 30}},
	{"Mac and Cheese", model.DietVeg, []string{"macaroni", "cheese", "milk", "butter"}, [6]float64{520, 26, 55, 2, 6, 20}},
	{"Beef Stew", model.DietNonVeg, []string{"beef", "potato", "carrot", "onion"}, [6]float64{480, 22, 30, 5, 6, 38}},
}

// Recipes returns a recipe dataset of eight recipes, five of them Veg,
// embedded with FixtureDimensions-wide hashing embeddings.
func Recipes() []*model.Recipe {
	recipes := make([]*model.Recipe, len(recipeFixtures))
	for i, f := range recipeFixtures {
		recipes[i] = &model.Recipe{
			Position:            i,
			Name:                f.name,
			IngredientParts:     model.JSONBStringArray(append([]string(nil), f.parts...)),
			Calories:            f.nutrients[0],
			FatContent:          f.nutrients[1],
			CarbohydrateContent: f.nutrients[2],
			FiberContent:        f.nutrients[3],
			SugarContent:        f.nutrients[4],
			ProteinContent:      f.nutrients[5],
			DietaryCategory:     f.category,
			EmbeddingModel:      FixtureModel,
			IngredientEmbedding: pgvector.NewVector(service.HashEmbed(strings.Join(f.parts, " "), FixtureDimensions)),
		}
	}
	return recipes
}

// Snapshot builds a service snapshot over Foods and Recipes.
func Snapshot() *service.Snapshot {
	snap, err := service.NewSnapshot(Foods(), Recipes())
	if err != nil {
		panic(err)
	}
	return snap
}
