package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oleksandr38kebab342/log-csv-git/internal/model"
)

// Exporter serializes a record set to an output stream.
type Exporter interface {
	Export(w io.Writer, records []model.LogRecord) error
}

// ---------------------------------------------------------------------------
// CSV Exporter
// ---------------------------------------------------------------------------

// CSVExporter writes the fixed 17-column table: a header row followed by
// one row per record, columns in export order.
type CSVExporter struct{}

func (CSVExporter) Export(w io.Writer, records []model.LogRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.FieldNames()); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Values()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ---------------------------------------------------------------------------
// JSON Exporter (one object per line, for piping)
// ---------------------------------------------------------------------------

// JSONExporter writes each record as a single JSON object per line.
type JSONExporter struct{}

func (JSONExporter) Export(w io.Writer, records []model.LogRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// WriteFile exports records to path using exp and returns the number of
// data rows written. Any I/O error is returned to the caller, which treats
// it as fatal.
func WriteFile(path string, exp Exporter, records []model.LogRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := exp.Export(f, records); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(records), nil
}

// ReadCSV reads a table previously written by CSVExporter. Column mapping
// is header-driven, so column order in the input does not matter; columns
// with unrecognized headers are ignored.
func ReadCSV(r io.Reader) ([]model.LogRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	var records []model.LogRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var rec model.LogRecord
		for i, name := range header {
			if i < len(row) {
				rec.Set(name, row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
