package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingColumn = errors.New("missing required column")

// Field is a semantic schedule column.
type Field string

const (
	FieldDate          Field = "date"
	FieldShiftType     Field = "shift_type"
	FieldWorker        Field = "worker"
	FieldExpectedCount Field = "expected_count"
)

// RequiredFields must all bind for a header row to be usable.
var RequiredFields = []Field{FieldDate, FieldShiftType, FieldWorker, FieldExpectedCount}

// ColumnMapping holds, per field, the header spellings to look for in
// priority order.
type ColumnMapping struct {
	aliases map[Field][]string
}

func DefaultMapping() ColumnMapping {
	return NewMapping(map[Field][]string{
		FieldDate:          {"fecha", "date", "dia"},
		FieldShiftType:     {"turno", "shift", "shift type", "tipo de turno"},
		FieldWorker:        {"trabajador", "conductor", "nombre", "worker", "employee name"},
		FieldExpectedCount: {"cantidad esperada", "cantidad_esperada", "expected count", "expected_count", "cantidad"},
	})
}

func NewMapping(aliases map[Field][]string) ColumnMapping {
	m := ColumnMapping{aliases: make(map[Field][]string, len(aliases))}
	for f, names := range aliases {
		for _, n := range names {
			if n = normalizeHeader(n); n != "" {
				m.aliases[f] = append(m.aliases[f], n)
			}
		}
	}
	return m
}

// WithAliases returns a copy of m where names take priority over the
// existing aliases of f.
func (m ColumnMapping) WithAliases(f Field, names ...string) ColumnMapping {
	merged := make(map[Field][]string, len(m.aliases)+1)
	for k, v := range m.aliases {
		merged[k] = v
	}
	merged[f] = append(append([]string{}, names...), m.aliases[f]...)
	return NewMapping(merged)
}

// Bind resolves every field against header once. The first alias present in
// the header wins.
func (m ColumnMapping) Bind(header []string) (BoundMapping, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := positions[key]; !dup && key != "" {
			positions[key] = i
		}
	}

	b := BoundMapping{index: make(map[Field]int, len(m.aliases))}
	for f, names := range m.aliases {
		for _, n := range names {
			if idx, ok := positions[n]; ok {
				b.index[f] = idx
				break
			}
		}
	}

	var missing []string
	for _, f := range RequiredFields {
		if _, ok := b.index[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return BoundMapping{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return b, nil
}

// BoundMapping is a ColumnMapping resolved against one header row.
type BoundMapping struct {
	index map[Field]int
}

// Index returns the column of f, or -1.
func (b BoundMapping) Index(f Field) int {
	if idx, ok := b.index[f]; ok {
		return idx
	}
	return -1
}

// Cell returns the trimmed value of f in row and whether the row reaches that column.
func (b BoundMapping) Cell(row []string, f Field) (string, bool) {
	idx := b.Index(f)
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func normalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}
