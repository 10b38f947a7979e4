// Package dataset reads the reference food and recipe CSV exports into model
// records. It is used by the seeding command; the recommenders read the
// records back from the database.
package dataset

import (
	"fmt"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// ParseRList parses the R-style list literals found in the recipe export,
// e.g. `c("a", "b")`. A bare quoted or unquoted value is a one-element list.
// "NA", "character(0)" and blank cells parse to nil.
func ParseRList(s string) []string {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "character(0)":
		return nil
	}
	if strings.HasPrefix(s, "c(") && strings.HasSuffix(s, ")") {
		s = s[2 : len(s)-1]
	}
	if !strings.Contains(s, `"`) {
		return splitPlain(s)
	}

	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			if inQuote {
				if v := cur.String(); v != "NA" {
					out = append(out, v)
				}
				cur.Reset()
			}
			inQuote = !inQuote
		case inQuote:
			cur.WriteRune(r)
		}
	}
	return out
}

func splitPlain(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" && part != "NA" {
			out = append(out, part)
		}
	}
	return out
}

// ParseEmbedding parses a serialized embedding such as "[0.1, -0.2, 0.3]".
func ParseEmbedding(s string) (pgvector.Vector, error) {
	var v pgvector.Vector
	if err := v.UnmarshalJSON([]byte(strings.TrimSpace(s))); err != nil {
		return v, fmt.Errorf("failed to parse embedding: %w", err)
	}
	if len(v.Slice()) == 0 {
		return v, fmt.Errorf("embedding is empty")
	}
	return v, nil
}
