// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportCSV writes the session history for the last `days` days (0 = all)
// to a standalone CSV file with the standard header.
func (l *Logger) ExportCSV(path string, days int) error {
	history, err := l.History(days)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, e := range history {
		if err := w.Write(csvRow(e)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ExportYAML writes the session history for the last `days` days (0 = all)
// to a YAML file.
func (l *Logger) ExportYAML(path string, days int) error {
	history, err := l.History(days)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
