package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"TempHarvest/internal/model"
)

const monthScript = `<html><head><script>
var hightemp = ["30","31"];
var lowtemp = ["20","21"];
var timeaxis = ["1","2"];
</script></head><body></body></html>`

func TestEmbedded_ZipsArrays(t *testing.T) {
	e := NewEmbedded("", "", "", "", nil)
	res := e.Extract([]byte(monthScript))
	require.True(t, res.OK(), "reason: %v", res.Reason)
	assert.Equal(t, []model.RawDayEntry{
		{Day: "1", High: "30", Low: "20"},
		{Day: "2", High: "31", Low: "21"},
	}, res.Entries)
}

func TestEmbedded_TrimsWhitespaceAndQuotes(t *testing.T) {
	page := `var hightemp = [ "30" , '31',32 ];var lowtemp=["20", "21" ,"22"];
var timeaxis = [1, 2, "3"];`
	res := NewEmbedded("", "", "", "", nil).Extract([]byte(page))
	require.True(t, res.OK())
	require.Len(t, res.Entries, 3)
	assert.Equal(t, model.RawDayEntry{Day: "2", High: "31", Low: "21"}, res.Entries[1])
	assert.Equal(t, model.RawDayEntry{Day: "3", High: "32", Low: "22"}, res.Entries[2])
}

func TestEmbedded_TrailingCommaIsIgnored(t *testing.T) {
	page := `var hightemp = ["30","31",];var lowtemp = ["20","21", ];var timeaxis = ["1","2",];`
	res := NewEmbedded("", "", "", "", nil).Extract([]byte(page))
	require.True(t, res.OK(), "reason: %v", res.Reason)
	assert.Equal(t, []model.RawDayEntry{
		{Day: "1", High: "30", Low: "20"},
		{Day: "2", High: "31", Low: "21"},
	}, res.Entries)

	assert.Equal(t, []string{"a", ""}, splitElements(`"a",""`))
	assert.Equal(t, []string{""}, splitElements(`,`))
}

func TestEmbedded_MissingArrayYieldsEmptyResult(t *testing.T) {
	pages := map[string]string{
		"no high": `var lowtemp = ["20"]; var timeaxis = ["1"];`,
		"no low":  `var hightemp = ["30"]; var timeaxis = ["1"];`,
		"no axis": `var hightemp = ["30"]; var lowtemp = ["20"];`,
		"empty":   ``,
	}
	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			res := NewEmbedded("", "", "", "", nil).Extract([]byte(page))
			assert.Empty(t, res.Entries)
			require.Error(t, res.Reason)
			assert.True(t, errors.Is(res.Reason, model.ErrParse))
		})
	}
}

func TestEmbedded_UnequalLengthsAreRejected(t *testing.T) {
	page := `var hightemp = ["30","31","32"]; var lowtemp = ["20","21"]; var timeaxis = ["1","2"];`
	res := NewEmbedded("", "", "", "", nil).Extract([]byte(page))
	assert.Empty(t, res.Entries)
	assert.True(t, errors.Is(res.Reason, model.ErrValidation))
}

func TestEmbedded_EmptyArraysAreNotAnError(t *testing.T) {
	page := `var hightemp = []; var lowtemp = [ ]; var timeaxis = [];`
	res := NewEmbedded("", "", "", "", nil).Extract([]byte(page))
	assert.True(t, res.OK())
	assert.Empty(t, res.Entries)
}

func TestEmbedded_CustomVariableNames(t *testing.T) {
	page := `var maxT = ["9"]; var minT = ["1"]; var days = ["15"];`
	res := NewEmbedded("maxT", "minT", "days", "", nil).Extract([]byte(page))
	require.True(t, res.OK())
	assert.Equal(t, []model.RawDayEntry{{Day: "15", High: "9", Low: "1"}}, res.Entries)
}

func TestEmbedded_InvalidBytesAreReplaced(t *testing.T) {
	page := append([]byte("\xff\xfe"), []byte(monthScript)...)
	res := NewEmbedded("", "", "", "", nil).Extract(page)
	require.True(t, res.OK())
	assert.Len(t, res.Entries, 2)
}

func TestEmbedded_LogsDiagnostic(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	res := NewEmbedded("", "", "", "", zap.New(core)).Extract([]byte("<html></html>"))
	assert.False(t, res.OK())
	require.Equal(t, 1, logs.FilterMessage("extraction produced no entries").Len())
	entry := logs.All()[0]
	assert.Equal(t, KindEmbedded, entry.ContextMap()["strategy"])
}
