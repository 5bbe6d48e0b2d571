// Package schedule reads weekly shift spreadsheets and validates their rows.
package schedule

import (
	"fmt"
	"strings"

	"transapp/internal/domain"
)

// headerSearchRows bounds how far down a sheet the header row may sit, to
// allow for title rows above the table.
const headerSearchRows = 10

type Result struct {
	Records    []domain.ShiftRecord
	Rejections []domain.Rejection
	HeaderRow  int
}

// Parse locates the header, binds the mapping to it and turns every non-blank
// row below it into either a record or a rejection. A repeat of an earlier
// worker, date and shift type is rejected as a duplicate.
func Parse(rows [][]string, allowed AllowedShiftTypes, mapping ColumnMapping) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrEmptyWorksheet
	}

	headerIdx, cols, err := findHeader(rows, mapping)
	if err != nil {
		return Result{}, err
	}

	res := Result{HeaderRow: headerIdx + 1}
	seen := make(map[string]int)
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		rowNum := i + 1

		v := Validate(row, allowed, cols)
		if !v.Accepted {
			res.Rejections = append(res.Rejections, domain.Rejection{Row: rowNum, Reason: string(v.Reason), Value: v.Value})
			continue
		}

		rawDate, _ := cols.Cell(row, FieldDate)
		date, ok := ParseDate(rawDate)
		if !ok {
			res.Rejections = append(res.Rejections, domain.Rejection{Row: rowNum, Reason: string(ReasonInvalidDate), Value: rawDate})
			continue
		}
		worker, _ := cols.Cell(row, FieldWorker)
		worker = strings.Join(strings.Fields(worker), " ")
		if worker == "" {
			res.Rejections = append(res.Rejections, domain.Rejection{Row: rowNum, Reason: string(ReasonMissingWorker)})
			continue
		}

		key := strings.ToLower(worker) + "|" + date.Format(domain.DateLayout) + "|" + string(v.ShiftType)
		if first, dup := seen[key]; dup {
			res.Rejections = append(res.Rejections, domain.Rejection{Row: rowNum, Reason: string(ReasonDuplicateShift), Value: fmt.Sprintf("row %d", first)})
			continue
		}
		seen[key] = rowNum

		res.Records = append(res.Records, domain.ShiftRecord{
			Date:          date,
			ShiftType:     v.ShiftType,
			WorkerName:    worker,
			ExpectedCount: v.ExpectedCount,
		})
	}
	return res, nil
}

func findHeader(rows [][]string, mapping ColumnMapping) (int, BoundMapping, error) {
	var firstErr error
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		if blank(rows[i]) {
			continue
		}
		cols, err := mapping.Bind(rows[i])
		if err == nil {
			return i, cols, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = ErrEmptyWorksheet
	}
	return 0, BoundMapping{}, firstErr
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
