// Package exporter turns analysis results into files and console output.
//
// Results are first laid out as a Table (FrequencyRecords, CrossTabRecords,
// ProfileRecords, InfoRecords, DescribeRecords). A Table can then be:
//
// CSVWriter: written to <out>/tables/<name>.csv, optionally with a UTF-8 BOM
// so Excel recognizes the encoding.
//
// WorkbookWriter: written as one sheet of a single xlsx workbook with a bold
// header row.
//
// ConsoleWriter: printed as an aligned grid.
//
// Example usage:
//
//	table := exporter.CrossTabRecords(ct)
//	path, err := exporter.NewCSVWriter(paths, logger).WriteTable(table, true)
//
//	err = exporter.NewConsoleWriter(os.Stdout).WriteTable(table)
package exporter
