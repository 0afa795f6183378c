package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TempHarvest/internal/model"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "last_run.json")
	month := model.MonthKey{Year: 2021, Month: 3}
	in := &model.RunSummary{
		ID:         "abc",
		City:       "foshan",
		Start:      "2021-01",
		End:        "2021-04",
		StartedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2024, 1, 2, 3, 5, 5, 0, time.UTC),
		Months:     4,
		Records:    90,
		CSVPath:    "data/temperature.csv",
		Failures: []model.MonthFailure{
			{Month: month, Key: month.String(), URL: "https://lishi.tianqi.com/foshan/202103.html", Kind: model.KindTransport, Detail: "status 502"},
		},
	}
	require.NoError(t, Save(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"month": "2021-03"`)
	assert.Contains(t, string(raw), `"kind": "transport"`)

	out, err := Load(path)
	require.NoError(t, err)
	assert.True(t, in.StartedAt.Equal(out.StartedAt))
	out.StartedAt, out.FinishedAt = in.StartedAt, in.FinishedAt
	assert.Equal(t, in, out)
}

func TestSave_NoFailuresWritesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	require.NoError(t, Save(path, &model.RunSummary{ID: "x"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"failures": []`)
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, &model.RunSummary{}, s)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
