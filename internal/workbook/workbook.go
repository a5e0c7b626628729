// Package workbook reads monthly budget workbooks (xlsx) into raw rows
// keyed by their header text. It knows nothing about transactions; the
// normalizer gives the rows meaning.
package workbook

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fjacquet/budget-board/internal/budgeterror"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
)

// TransactionsSheetName is the sheet the reader prefers when present.
const TransactionsSheetName = "Transactions"

var errNoSheets = errors.New("workbook contains no sheets")

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Row is one data row of the transactions sheet. Cells are keyed by the
// trimmed header text of their column; blank cells are omitted.
type Row struct {
	Number int // 1-based sheet row number
	Cells  map[string]string
}

// Workbook is the raw content the reader extracts from one xlsx file.
type Workbook struct {
	SourceName string           // base file name the workbook came from
	SheetName  string           // sheet the rows were read from
	Headers    []string         // trimmed header texts in sheet order
	Rows       []Row            // data rows, blank rows skipped
	Income     *decimal.Decimal // income cell value, nil when missing or non-numeric
}

// Reader extracts workbook content. The income location is fixed at
// construction: sheet (empty means the first sheet) and cell address.
type Reader struct {
	incomeSheet string
	incomeCell  string
}

// NewReader builds a Reader that looks for income in the given sheet and
// cell, e.g. ("", "O3") for cell O3 of the first sheet.
func NewReader(incomeSheet, incomeCell string) *Reader {
	return &Reader{incomeSheet: incomeSheet, incomeCell: incomeCell}
}

// Read opens the workbook at path. A file that cannot be opened as xlsx
// yields *budgeterror.UnreadableFileError.
func (r *Reader) Read(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &budgeterror.UnreadableFileError{FilePath: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close workbook",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	return r.parse(f, filepath.Base(path))
}

// ReadFrom reads a workbook from a stream. name is used for reporting only.
func (r *Reader) ReadFrom(reader io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, &budgeterror.UnreadableFileError{FilePath: name, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close workbook",
				logging.Field{Key: logging.FieldFile, Value: name})
		}
	}()

	return r.parse(f, name)
}

func (r *Reader) parse(f *excelize.File, name string) (*Workbook, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &budgeterror.UnreadableFileError{FilePath: name, Err: errNoSheets}
	}

	sheetName := pickTransactionsSheet(sheets)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &budgeterror.UnreadableFileError{FilePath: name, Err: err}
	}

	wb := &Workbook{
		SourceName: name,
		SheetName:  sheetName,
		Income:     r.readIncome(f, sheets),
	}

	headerIdx := firstNonEmptyRow(rows)
	if headerIdx < 0 {
		log.Warn("Workbook has no header row",
			logging.Field{Key: logging.FieldFile, Value: name},
			logging.Field{Key: logging.FieldSheet, Value: sheetName})
		return wb, nil
	}

	for _, cell := range rows[headerIdx] {
		wb.Headers = append(wb.Headers, strings.TrimSpace(cell))
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		cells := make(map[string]string)
		for j, header := range wb.Headers {
			if header == "" || j >= len(rows[i]) {
				continue
			}
			value := strings.TrimSpace(rows[i][j])
			if value == "" {
				continue
			}
			// First occurrence of a duplicated header wins
			if _, seen := cells[header]; seen {
				continue
			}
			cells[header] = value
		}
		if len(cells) == 0 {
			continue
		}
		wb.Rows = append(wb.Rows, Row{Number: i + 1, Cells: cells})
	}

	log.Debug("Read workbook",
		logging.Field{Key: logging.FieldFile, Value: name},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
		logging.Field{Key: logging.FieldCount, Value: len(wb.Rows)})
	return wb, nil
}

// pickTransactionsSheet prefers a sheet named "Transactions", then the
// second sheet (monthly workbooks keep a summary sheet first), then the
// first.
func pickTransactionsSheet(sheets []string) string {
	for _, sheet := range sheets {
		if strings.EqualFold(strings.TrimSpace(sheet), TransactionsSheetName) {
			return sheet
		}
	}
	if len(sheets) > 1 {
		return sheets[1]
	}
	return sheets[0]
}

// readIncome reads the configured income cell. Anything that does not parse
// as a number yields nil, never an error.
func (r *Reader) readIncome(f *excelize.File, sheets []string) *decimal.Decimal {
	if r.incomeCell == "" {
		return nil
	}

	sheetName := sheets[0]
	if r.incomeSheet != "" {
		found := false
		for _, sheet := range sheets {
			if strings.EqualFold(strings.TrimSpace(sheet), r.incomeSheet) {
				sheetName, found = sheet, true
				break
			}
		}
		if !found {
			return nil
		}
	}

	value, err := f.GetCellValue(sheetName, r.incomeCell)
	if err != nil || strings.TrimSpace(value) == "" {
		return nil
	}

	income, err := models.ParseAmount(value)
	if err != nil {
		log.Debug("Income cell is not numeric",
			logging.Field{Key: logging.FieldSheet, Value: sheetName},
			logging.Field{Key: "cell", Value: r.incomeCell},
			logging.Field{Key: "value", Value: value})
		return nil
	}
	return &income
}

// firstNonEmptyRow returns the index of the first row with any non-blank
// cell, or -1 when the sheet is empty.
func firstNonEmptyRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return i
			}
		}
	}
	return -1
}
