package service

import (
	"strings"

	"github.com/culinary-compass/backend/internal/dataset"
	"github.com/culinary-compass/backend/internal/model"
)

// nonVegKeywords mark an ingredient or category as non-vegetarian when they
// occur anywhere inside it.
var nonVegKeywords = []string{
	// meat and poultry
	"chicken", "beef", "pork", "mutton", "lamb", "turkey", "duck", "quail", "goat", "veal",
	"rabbit", "boar", "venison", "bison", "kangaroo", "goose", "pheasant", "pigeon", "elk",
	// processed meat
	"bacon", "ham", "sausage", "pepperoni", "salami", "chorizo", "pastrami", "prosciutto",
	"mortadella", "hot dog", "jerky", "liverwurst", "blood sausage", "scrapple",
	// fish
	"fish", "tuna", "salmon", "trout", "cod", "haddock", "mackerel", "sardine", "anchovy",
	"herring", "catfish", "bass", "snapper", "grouper", "halibut", "swordfish", "mahi mahi",
	"flounder", "eel", "shark", "sturgeon", "tilapia",
	// shellfish
	"shrimp", "prawns", "crab", "lobster", "crawfish", "squid", "octopus", "scallops",
	"mussels", "clams", "oysters", "abalone", "conch",
	// animal-derived
	"eggs", "gelatin", "lard", "suet", "tallow", "bone broth", "fish sauce", "oyster sauce",
	"shrimp paste", "anchovy paste", "worcestershire sauce", "caviar", "roe", "squid ink",
	// offal
	"liver", "kidney", "heart", "brain", "tripe", "sweetbreads", "tongue", "gizzards",
}

// ClassifyDiet labels a recipe Non-Veg when any ingredient part or category
// entry contains a non-vegetarian keyword. Matching is substring based and
// case-insensitive, so "ham" also matches "graham crackers".
func ClassifyDiet(ingredientParts []string, category string) model.DietaryCategory {
	items := append([]string(nil), ingredientParts...)
	items = append(items, dataset.ParseRList(category)...)

	for _, item := range items {
		item = strings.ToLower(item)
		for _, kw := range nonVegKeywords {
			if strings.Contains(item, kw) {
				return model.DietNonVeg
			}
		}
	}
	return model.DietVeg
}
