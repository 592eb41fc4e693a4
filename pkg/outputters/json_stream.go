package outputters

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vela-sec/vela/internal/message"
)

// JSONStreamWriter writes records into a single JSON array, one fragment
// per page, so a long export never holds more than a page in memory. The
// file is a valid JSON array once Close runs, even with zero records.
type JSONStreamWriter struct {
	file    *os.File
	path    string
	count   int
	started bool
}

// NewJSONStreamWriter opens path for writing and emits the array opener.
func NewJSONStreamWriter(path string) (*JSONStreamWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if _, err := file.WriteString("[\n"); err != nil {
		file.Close()
		return nil, err
	}
	return &JSONStreamWriter{file: file, path: path}, nil
}

// WriteRecord appends one record to the array.
func (w *JSONStreamWriter) WriteRecord(record any) error {
	data, err := json.MarshalIndent(record, "  ", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	prefix := "  "
	if w.started {
		prefix = ",\n  "
	}
	if _, err := w.file.WriteString(prefix + string(data)); err != nil {
		return err
	}
	w.started = true
	w.count++
	return nil
}

// Count returns how many records have been written so far.
func (w *JSONStreamWriter) Count() int {
	return w.count
}

// Path returns the output file path.
func (w *JSONStreamWriter) Path() string {
	return w.path
}

// Close terminates the array and closes the file.
func (w *JSONStreamWriter) Close() error {
	if _, err := w.file.WriteString("\n]\n"); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}
	message.Success("Output written to %s (%d records)", w.path, w.count)
	return nil
}
