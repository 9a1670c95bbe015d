// Package report serializes a built leaderboard to its CSV and JSON
// artifacts.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	leaderboard "github.com/casperstats/cspr-leaderboard"
)

// WriteCSV writes one header row plus one row per ranked account, in the
// fixed column order of leaderboard.CSVHeader.
func WriteCSV(path string, rows []leaderboard.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(leaderboard.CSVHeader()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range rows {
		if err := writer.Write(rows[i].CSVRecord()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full report object, indented.
func WriteJSON(path string, rep *leaderboard.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
