package nutrient

import "sort"

// datasetAliases maps column spellings found in the reference food dataset
// to canonical schema names.
var datasetAliases = map[string]string{
	"Niacin":       Niacin,
	"vitamin_B_6":  VitaminB6,
	"vitamin_B_12": VitaminB12,
}

// CanonicalName resolves a dataset column name to its schema name.
// Names without an alias are returned unchanged.
func CanonicalName(column string) string {
	if name, ok := datasetAliases[column]; ok {
		return name
	}
	return column
}

func sortedCopy(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
