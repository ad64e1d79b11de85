package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// maxSheetName is the Excel limit on sheet name length
const maxSheetName = 31

// WorkbookWriter writes tables into a single xlsx workbook, one sheet each
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write saves tables to path. Header cells are bold. Cells after the first
// column that parse as numbers are stored as numbers.
func (w *WorkbookWriter) Write(ctx context.Context, path string, tables []Table) error {
	if len(tables) == 0 {
		return errors.NewAppValidationError("workbook has no tables", nil).WithContext("path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.NewStorageError("create header style", err)
	}

	used := make(map[string]bool)
	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet := sheetName(t.Name, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return errors.NewStorageError(fmt.Sprintf("name sheet %s", sheet), err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return errors.NewStorageError(fmt.Sprintf("create sheet %s", sheet), err)
		}

		if err := writeSheet(f, sheet, t, headerStyle); err != nil {
			return errors.NewStorageError(fmt.Sprintf("write sheet %s", sheet), err).
				WithContext("path", path)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("save workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))

	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table, headerStyle int) error {
	for c, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	if len(t.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
			return err
		}
	}

	for r, record := range t.Records {
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(c, value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue keeps the label column as text so codes like "250" stay strings
func cellValue(col int, value string) interface{} {
	if col == 0 {
		return value
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// sheetName truncates name to the Excel limit, drops characters Excel
// rejects, and disambiguates repeats with a numeric suffix
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if clean == "" {
		clean = "sheet"
	}

	candidate := truncate(clean, maxSheetName)
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := "~" + strconv.Itoa(n)
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
