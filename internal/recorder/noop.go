package recorder

import "TempHarvest/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.RunSummary) error                               { return nil }
func (n *NoopRecorder) RecordTemperatures(_, _ string, _ []model.TemperatureRecord) error { return nil }
func (n *NoopRecorder) RecordFailures(_ string, _ []model.MonthFailure) error             { return nil }
func (n *NoopRecorder) Close() error                                                      { return nil }
