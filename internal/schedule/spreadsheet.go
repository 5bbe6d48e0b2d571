package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"transapp/internal/domain"
)

var (
	ErrNoWorksheet     = errors.New("no worksheet found")
	ErrEmptyWorksheet  = errors.New("worksheet is empty")
	ErrMultipleSheets  = errors.New("multiple worksheets found; upload a file with a single sheet")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

const maxXLSRows = 100000

// ReadRows returns the cells of the first worksheet. Legacy .xls files go
// through the xls reader, everything else through excelize. Cell values are
// raw, so dates stored as dates come back as Excel serials.
func ReadRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, ErrNoWorksheet
		}
		if workbook.NumSheets() > 1 {
			return nil, ErrMultipleSheets
		}
		rows := workbook.ReadAllCells(maxXLSRows)
		if len(rows) == 0 {
			return nil, ErrEmptyWorksheet
		}
		return rows, nil
	case ".xlsx", ".xlsm", "":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, ErrNoWorksheet
		}
		rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, ErrEmptyWorksheet
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

var dateLayouts = []string{
	domain.DateLayout,
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2/1/2006 15:04",
	time.RFC3339,
}

// ParseDate reads a schedule date cell. Slash and dash dates are day first.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		// plain years and small counts are not dates
		if serial < 20000 || serial > 80000 {
			return time.Time{}, false
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return domain.Day(parsed), true
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return domain.Day(parsed), true
		}
	}
	return time.Time{}, false
}
