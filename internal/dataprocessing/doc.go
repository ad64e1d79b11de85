// Package dataprocessing holds the cleaning and aggregation core of the
// diabetes readmission analysis.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads a CSV file (or the first sheet of an xlsx workbook) into a Dataset
// 2. Cleaning: DropColumns removes the excluded columns, ReplaceValue rewrites the "?" marker
// 3. Aggregation: ValueCounts, CrossTabulate and Filter, driven by a Summarizer
// 4. Profiling: Profile, SuggestExclusions, Info, Describe and Head
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderConfig{})
//	ds, err := loader.LoadFile(ctx, "diabetic_data.csv")
//	if err != nil {
//	    return err
//	}
//	ds, err = dataprocessing.DropColumns(ds, config.ExcludedColumns)
//	if err != nil {
//	    return err
//	}
//	ds, replaced := dataprocessing.ReplaceValue(ds, "?", "Unknown")
//	gender, err := dataprocessing.ValueCounts(ds, "gender")
//
// # Data Flow
//
//	CSV → Loader → Dataset → DropColumns → ReplaceValue → ValueCounts / CrossTabulate / Filter
//
// # Missing values
//
// An empty cell is null. Nulls are left out of frequency totals and
// cross-tab keys. The "?" marker is an ordinary value until ReplaceValue
// rewrites it.
//
// # Error Handling
//
// Errors are *errors.AppError values: ErrFileNotFound for a missing input,
// ErrMalformedRow (with the line number) for rows of the wrong width and
// ErrColumnNotFound for unknown column names. All are matchable with
// errors.Is.
package dataprocessing
