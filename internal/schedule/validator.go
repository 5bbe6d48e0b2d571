package schedule

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"transapp/internal/domain"
)

type Reason string

const (
	ReasonMissingShiftType         Reason = "missing_shift_type"
	ReasonEmptyShiftType           Reason = "empty_shift_type"
	ReasonUnknownShiftType         Reason = "unknown_shift_type"
	ReasonMissingExpectedCount     Reason = "missing_expected_count"
	ReasonInvalidExpectedCount     Reason = "invalid_expected_count"
	ReasonNonPositiveExpectedCount Reason = "non_positive_expected_count"
	ReasonInvalidDate              Reason = "invalid_date"
	ReasonMissingWorker            Reason = "missing_worker"
	ReasonDuplicateShift           Reason = "duplicate_shift"
)

// AllowedShiftTypes maps accepted shift labels to shift types. Labels match
// case-insensitively with surrounding and repeated spaces ignored.
type AllowedShiftTypes struct {
	labels map[string]domain.ShiftType
}

func NewAllowedShiftTypes(labels map[string]domain.ShiftType) AllowedShiftTypes {
	a := AllowedShiftTypes{labels: make(map[string]domain.ShiftType, len(labels))}
	for l, st := range labels {
		a.labels[normalizeLabel(l)] = st
	}
	return a
}

func DefaultAllowedShiftTypes() AllowedShiftTypes {
	return NewAllowedShiftTypes(map[string]domain.ShiftType{
		"PRIMER TURNO":  domain.ShiftFirst,
		"PRIMERO":       domain.ShiftFirst,
		"FIRST":         domain.ShiftFirst,
		"SEGUNDO TURNO": domain.ShiftSecond,
		"SEGUNDO":       domain.ShiftSecond,
		"SECOND":        domain.ShiftSecond,
		"TERCER TURNO":  domain.ShiftThird,
		"TERCERO":       domain.ShiftThird,
		"THIRD":         domain.ShiftThird,
	})
}

// ParseAllowedShiftTypes reads "LABEL=type,LABEL=type".
func ParseAllowedShiftTypes(s string) (AllowedShiftTypes, error) {
	labels := make(map[string]domain.ShiftType)
	for _, pair := range strings.Split(s, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		label, typ, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return AllowedShiftTypes{}, fmt.Errorf("shift label %q: expected LABEL=type", pair)
		}
		st, ok := domain.ParseShiftType(typ)
		if !ok {
			return AllowedShiftTypes{}, fmt.Errorf("shift label %q: unknown shift type %q", label, typ)
		}
		labels[label] = st
	}
	if len(labels) == 0 {
		return AllowedShiftTypes{}, fmt.Errorf("no shift labels in %q", s)
	}
	return NewAllowedShiftTypes(labels), nil
}

func (a AllowedShiftTypes) Lookup(label string) (domain.ShiftType, bool) {
	st, ok := a.labels[normalizeLabel(label)]
	return st, ok
}

// Labels returns the accepted labels, sorted.
func (a AllowedShiftTypes) Labels() []string {
	out := make([]string, 0, len(a.labels))
	for l := range a.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Verdict is the outcome of validating one row.
type Verdict struct {
	Accepted      bool
	ShiftType     domain.ShiftType
	ExpectedCount int
	Reason        Reason
	Value         string
}

// MaxExpectedCount caps the expected count so it always fits the stored int.
const MaxExpectedCount = math.MaxInt32

func reject(r Reason, value string) Verdict {
	return Verdict{Reason: r, Value: value}
}

// Validate accepts a row when its shift type is an allowed label and its
// expected count is a number greater than zero. Nothing else is checked here.
func Validate(row []string, allowed AllowedShiftTypes, cols BoundMapping) Verdict {
	label, present := cols.Cell(row, FieldShiftType)
	if !present {
		return reject(ReasonMissingShiftType, "")
	}
	if label == "" {
		return reject(ReasonEmptyShiftType, "")
	}
	st, ok := allowed.Lookup(label)
	if !ok {
		return reject(ReasonUnknownShiftType, label)
	}

	raw, present := cols.Cell(row, FieldExpectedCount)
	if !present || raw == "" {
		return reject(ReasonMissingExpectedCount, "")
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return reject(ReasonInvalidExpectedCount, raw)
	}
	if n <= 0 {
		return reject(ReasonNonPositiveExpectedCount, raw)
	}
	if n > MaxExpectedCount {
		return reject(ReasonInvalidExpectedCount, raw)
	}

	return Verdict{
		Accepted:      true,
		ShiftType:     st,
		ExpectedCount: int(math.Ceil(n)),
	}
}

func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
