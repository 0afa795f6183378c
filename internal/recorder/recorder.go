package recorder

import "TempHarvest/internal/model"

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(run *model.RunSummary) error
	RecordTemperatures(runID, city string, records []model.TemperatureRecord) error
	RecordFailures(runID string, failures []model.MonthFailure) error
	Close() error
}
