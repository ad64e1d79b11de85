package exporter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// ConsoleWriter prints tables as aligned text grids
type ConsoleWriter struct {
	out io.Writer
}

// NewConsoleWriter creates a writer printing to out
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out}
}

// WriteTable prints the title line followed by the grid
func (c *ConsoleWriter) WriteTable(t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(c.out, "\n%s\n", t.Title); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(t.Headers)
	table.AppendBulk(t.Records)
	table.Render()
	return nil
}

// WriteTables prints each table in order
func (c *ConsoleWriter) WriteTables(tables []Table) error {
	for _, t := range tables {
		if err := c.WriteTable(t); err != nil {
			return err
		}
	}
	return nil
}
