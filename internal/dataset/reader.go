package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// table wraps a csv reader with header lookups.
type table struct {
	r       *csv.Reader
	columns map[string]int
	line    int
}

func newTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	t := &table{r: cr, columns: make(map[string]int, len(header)), line: 1}
	for i, name := range header {
		t.columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return t, nil
}

// next returns the following record, or io.EOF.
func (t *table) next() (record, error) {
	fields, err := t.r.Read()
	if errors.Is(err, io.EOF) {
		return record{}, io.EOF
	}
	t.line++
	if err != nil {
		return record{}, fmt.Errorf("line %d: %w", t.line, err)
	}
	return record{fields: fields, columns: t.columns, line: t.line}, nil
}

type record struct {
	fields  []string
	columns map[string]int
	line    int
}

func (r record) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// float reads a numeric cell. Blank and NA cells read as 0.
func (r record) float(column string) (float64, error) {
	v := r.get(column)
	if v == "" || v == "NA" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, column, err)
	}
	return f, nil
}
