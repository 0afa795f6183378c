// Package report keeps a JSON summary of the most recent run so failed
// months can be retried by hand.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"TempHarvest/internal/model"
)

// Load reads the run summary from a JSON file. Returns a zero summary if the file doesn't exist.
func Load(filePath string) (*model.RunSummary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.RunSummary{}, nil
		}
		return nil, err
	}
	var summary model.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	for i := range summary.Failures {
		if k, err := model.ParseMonthKey(summary.Failures[i].Key); err == nil {
			summary.Failures[i].Month = k
		}
	}
	return &summary, nil
}

// Save writes the run summary to a JSON file, creating parent directories.
func Save(filePath string, summary *model.RunSummary) error {
	if summary.Failures == nil {
		summary.Failures = []model.MonthFailure{}
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return os.WriteFile(filePath, data, 0644)
}
