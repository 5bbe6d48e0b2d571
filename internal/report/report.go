// Package report renders payment results for people and spreadsheets.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"transapp/internal/domain"
	"transapp/internal/payroll"
)

// Line is one worker row of an exported payroll.
type Line struct {
	Worker       string `csv:"worker"`
	FirstShifts  int    `csv:"first_shifts"`
	FirstAmount  int64  `csv:"first_amount"`
	SecondShifts int    `csv:"second_shifts"`
	SecondAmount int64  `csv:"second_amount"`
	ThirdShifts  int    `csv:"third_shifts"`
	ThirdAmount  int64  `csv:"third_amount"`
	Total        int64  `csv:"total"`
}

func Lines(results []domain.PaymentResult) []Line {
	out := make([]Line, 0, len(results))
	for _, r := range results {
		first := r.Breakdown[domain.ShiftFirst]
		second := r.Breakdown[domain.ShiftSecond]
		third := r.Breakdown[domain.ShiftThird]
		out = append(out, Line{
			Worker:       r.WorkerName,
			FirstShifts:  first.Count,
			FirstAmount:  first.Amount,
			SecondShifts: second.Count,
			SecondAmount: second.Amount,
			ThirdShifts:  third.Count,
			ThirdAmount:  third.Amount,
			Total:        r.TotalAmount,
		})
	}
	return out
}

func WriteCSV(w io.Writer, results []domain.PaymentResult) error {
	lines := Lines(results)
	return gocsv.Marshal(&lines, w)
}

var xlsxHeader = []any{
	"Trabajador",
	"Primer turno", "Valor primer turno",
	"Segundo turno", "Valor segundo turno",
	"Tercer turno", "Valor tercer turno",
	"Total",
}

const sheetName = "Nomina"

// WriteXLSX writes a one-sheet workbook with a row per worker and a totals row.
func WriteXLSX(w io.Writer, results []domain.PaymentResult, from, to time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	title := fmt.Sprintf("Nómina %s a %s", from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A3", &xlsxHeader); err != nil {
		return err
	}

	row := 4
	for _, l := range Lines(results) {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{l.Worker, l.FirstShifts, l.FirstAmount, l.SecondShifts, l.SecondAmount, l.ThirdShifts, l.ThirdAmount, l.Total}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		row++
	}

	totals := payroll.Summarize(results)
	cell, _ := excelize.CoordinatesToCellName(1, row)
	values := []any{
		"TOTAL",
		totals.ByShift[domain.ShiftFirst].Count, totals.ByShift[domain.ShiftFirst].Amount,
		totals.ByShift[domain.ShiftSecond].Count, totals.ByShift[domain.ShiftSecond].Amount,
		totals.ByShift[domain.ShiftThird].Count, totals.ByShift[domain.ShiftThird].Amount,
		totals.Amount,
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

// Text renders results for a chat message.
func Text(results []domain.PaymentResult, from, to time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nómina %s a %s\n", from.Format("02.01.2006"), to.Format("02.01.2006"))
	if len(results) == 0 {
		b.WriteString("Sin turnos en el periodo.")
		return b.String()
	}
	for _, r := range results {
		fmt.Fprintf(&b, "\n%s: %s", r.WorkerName, Money(r.TotalAmount))
		for _, st := range domain.ShiftTypes {
			if t, ok := r.Breakdown[st]; ok && t.Count > 0 {
				fmt.Fprintf(&b, "\n  %s: %d turnos, %s", shiftName(st), t.Count, Money(t.Amount))
			}
		}
	}
	totals := payroll.Summarize(results)
	fmt.Fprintf(&b, "\n\nTotal: %s (%d turnos, %d trabajadores)", Money(totals.Amount), totals.Shifts, totals.Workers)
	return b.String()
}

// Money formats whole currency units with dot thousands separators.
func Money(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "$" + sign + b.String()
}

func shiftName(st domain.ShiftType) string {
	switch st {
	case domain.ShiftFirst:
		return "Primer turno"
	case domain.ShiftSecond:
		return "Segundo turno"
	case domain.ShiftThird:
		return "Tercer turno"
	}
	return string(st)
}
