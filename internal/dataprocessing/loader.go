package dataprocessing

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// utf8BOM is stripped from the first header cell
const utf8BOM = "\ufeff"

// cancelCheckInterval is how many rows are read between context checks
const cancelCheckInterval = 4096

// LoaderConfig holds configuration options for the Loader
type LoaderConfig struct {
	// RequiredColumns must all be present in the header
	RequiredColumns []string
}

// Loader reads a fixed-schema dataset into memory
type Loader struct {
	logger          *slog.Logger
	requiredColumns []string
}

// NewLoader creates a Loader. A nil logger uses slog.Default().
func NewLoader(logger *slog.Logger, config LoaderConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:          logger,
		requiredColumns: config.RequiredColumns,
	}
}

// LoadFile loads a .csv file, or the first sheet of a .xlsx workbook
func (l *Loader) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileNotFoundError(path, err)
		}
		return nil, errors.NewStorageError(fmt.Sprintf("stat %s", path), err)
	}

	var (
		ds  *Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		ds, err = l.LoadXLSX(ctx, path)
	default:
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err)
		}
		defer f.Close()
		ds, err = l.LoadCSV(ctx, f)
	}
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", ds.NumRows()),
		slog.Int("columns", ds.NumColumns()))

	return ds, nil
}

// LoadCSV reads comma-separated records with a header row. Every data row
// must have exactly as many fields as the header.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("empty input: no header row", nil)
	}
	if err != nil {
		return nil, csvError(err)
	}
	header = cleanHeader(header)

	if err := l.checkRequired(header); err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		if len(rows)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		rows = append(rows, record)
	}

	l.logger.DebugContext(ctx, "csv parsed",
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(header)))

	return newDataset(header, rows), nil
}

// LoadXLSX reads the first sheet of a workbook. Row 1 is the header; short
// rows are padded with empty cells because excelize trims trailing blanks.
func (l *Loader) LoadXLSX(ctx context.Context, path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("read sheet %s", sheets[0]), err)
	}
	if len(all) == 0 {
		return nil, errors.NewParsingError("empty input: no header row", nil)
	}

	header := cleanHeader(all[0])
	if err := l.checkRequired(header); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(all)-1)
	for i, raw := range all[1:] {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if len(raw) > len(header) {
			return nil, errors.NewMalformedRowError(i+2,
				fmt.Errorf("expected %d fields, got %d", len(header), len(raw)))
		}
		row := make([]string, len(header))
		copy(row, raw)
		rows = append(rows, row)
	}

	l.logger.DebugContext(ctx, "workbook parsed",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(rows)))

	return newDataset(header, rows), nil
}

func (l *Loader) checkRequired(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return errors.NewAppError(errors.ErrTypeSchema, fmt.Sprintf("duplicate column %q", h), nil).
				WithContext("column", h)
		}
		seen[h] = true
	}
	for _, c := range l.requiredColumns {
		if !present[c] {
			return errors.NewColumnNotFoundError(c)
		}
	}
	return nil
}

// cleanHeader strips a UTF-8 byte order mark from the first header cell
func cleanHeader(header []string) []string {
	out := append([]string(nil), header...)
	if len(out) > 0 {
		out[0] = strings.TrimPrefix(out[0], utf8BOM)
	}
	return out
}

// csvError maps encoding/csv failures onto the error taxonomy
func csvError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.NewMalformedRowError(pe.Line, pe.Err)
	}
	return errors.NewParsingError("read csv", err)
}
