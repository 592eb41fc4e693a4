package outputters

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/vela-sec/vela/internal/message"
)

// CSVStreamWriter appends rows as pages arrive instead of accumulating the
// whole result set in memory first. The header goes out immediately, so an
// empty result still produces a well-formed file.
type CSVStreamWriter struct {
	file   *os.File
	writer *csv.Writer
	path   string
	count  int
}

// NewCSVStreamWriter opens path for writing and writes the header row.
func NewCSVStreamWriter(path string, header []string) (*CSVStreamWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}

	return &CSVStreamWriter{
		file:   file,
		writer: writer,
		path:   path,
	}, nil
}

// WriteRow appends one record row.
func (w *CSVStreamWriter) WriteRow(row []string) error {
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("error writing CSV row: %w", err)
	}
	w.count++
	return nil
}

// Flush pushes buffered rows to disk. Called once per page so a crash
// mid-run loses at most the current page.
func (w *CSVStreamWriter) Flush() error {
	w.writer.Flush()
	return w.writer.Error()
}

// Count returns how many rows have been written so far.
func (w *CSVStreamWriter) Count() int {
	return w.count
}

// Path returns the output file path.
func (w *CSVStreamWriter) Path() string {
	return w.path
}

// Close flushes remaining rows and closes the file.
func (w *CSVStreamWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}
	message.Success("Output written to %s (%d records)", w.path, w.count)
	return nil
}
