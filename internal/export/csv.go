package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/bizdate/pkg/flatten"
	"go.uber.org/zap"
)

// encode is swapped in tests to simulate write failures
var encode = Encode

// Row is one CSV line before flattening
type Row []flatten.Value

// CSVExporter writes flattened rows with every field quoted
type CSVExporter struct {
	logger *zap.Logger
}

// NewCSVExporter creates a new CSVExporter
func NewCSVExporter(logger *zap.Logger) *CSVExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVExporter{logger: logger}
}

// WriteFile writes rows to path unless the file already exists.
// It reports whether anything was written.
func (e *CSVExporter) WriteFile(path string, rows []Row) (bool, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			e.logger.Debug("CSV file already exists, skipping",
				zap.String("file", path))
			return false, nil
		}
		return false, fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	e.logger.Debug("Serialising rows to CSV file",
		zap.String("file", path),
		zap.Int("rows", len(rows)))

	if err := encode(file, rows); err != nil {
		e.discard(file, path)
		return false, err
	}
	if err := file.Close(); err != nil {
		e.discard(file, path)
		return false, fmt.Errorf("failed to close CSV file: %w", err)
	}
	return true, nil
}

// discard removes a partly written file so the next run does not skip path
func (e *CSVExporter) discard(file *os.File, path string) {
	file.Close()
	if err := os.Remove(path); err != nil {
		e.logger.Warn("Failed to remove incomplete CSV file",
			zap.String("file", path),
			zap.Error(err))
	}
}

// Encode writes rows to w, quoting every field and ending lines with CRLF
func Encode(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for i, row := range rows {
		for j, field := range flatten.Flatten(row...) {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
