package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"TempHarvest/internal/model"
)

func TestTable_SingleDataRow(t *testing.T) {
	page := `<html><body><table>
<tr><th>日期</th><th>气温</th></tr>
<tr><td>2024-01-01</td><td>15</td></tr>
</table></body></html>`
	res := NewTable("", 0, "", nil).Extract([]byte(page))
	require.True(t, res.OK(), "reason: %v", res.Reason)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "2024-01-01", res.Entries[0].Day)
	assert.Equal(t, "15", res.Entries[0].High)
	assert.Equal(t, "", res.Entries[0].Low)
}

func TestTable_ThirdCellIsLow(t *testing.T) {
	page := `<table>
<tr><td>day</td><td>high</td><td>low</td></tr>
<tr><td> 3 </td><td> 28℃ </td><td>19℃</td></tr>
<tr><td>4</td></tr>
<tr><td>5</td><td>27℃</td><td>18℃</td></tr>
</table>`
	res := NewTable("", 2, "", nil).Extract([]byte(page))
	require.True(t, res.OK())
	assert.Equal(t, []model.RawDayEntry{
		{Day: "3", High: "28℃", Low: "19℃"},
		{Day: "5", High: "27℃", Low: "18℃"},
	}, res.Entries)
}

func TestTable_MinCellsSkipsShortRows(t *testing.T) {
	page := `<table><tr><td>h</td></tr>
<tr><td>1</td><td>20</td></tr>
<tr><td>2</td><td>21</td><td>11</td></tr></table>`
	res := NewTable("", 3, "", nil).Extract([]byte(page))
	require.True(t, res.OK())
	assert.Equal(t, []model.RawDayEntry{{Day: "2", High: "21", Low: "11"}}, res.Entries)
}

func TestTable_IdentifiedTable(t *testing.T) {
	page := `<table><tr><td>nav</td><td>x</td></tr><tr><td>ignored</td><td>0</td></tr></table>
<table id="temperature-table"><tbody>
<tr><th>Date</th><th>Temp</th></tr>
<tr><td>2024-02-01</td><td>12</td></tr>
</tbody></table>`
	res := NewTable(`//table[@id="temperature-table"]`, 2, "", nil).Extract([]byte(page))
	require.True(t, res.OK())
	assert.Equal(t, []model.RawDayEntry{{Day: "2024-02-01", High: "12"}}, res.Entries)
}

func TestTable_NoTable(t *testing.T) {
	res := NewTable("", 2, "", nil).Extract([]byte("<html><body><p>nothing</p></body></html>"))
	assert.Empty(t, res.Entries)
	assert.True(t, errors.Is(res.Reason, model.ErrParse))
}

func TestTable_BadXPath(t *testing.T) {
	res := NewTable("//table[", 2, "", nil).Extract([]byte("<table></table>"))
	assert.True(t, errors.Is(res.Reason, model.ErrParse))
}

func TestTable_DecodesGBK(t *testing.T) {
	page, err := simplifiedchinese.GBK.NewEncoder().String(`<table>
<tr><td>日期</td><td>最高气温</td><td>最低气温</td></tr>
<tr><td>2021-07-01 星期四</td><td>33℃</td><td>27℃</td></tr>
</table>`)
	require.NoError(t, err)
	res := NewTable("", 2, "gbk", nil).Extract([]byte(page))
	require.True(t, res.OK())
	assert.Equal(t, []model.RawDayEntry{{Day: "2021-07-01 星期四", High: "33℃", Low: "27℃"}}, res.Entries)
}

func TestNew_SelectsStrategy(t *testing.T) {
	s, err := New(Options{Kind: KindTable}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindTable, s.Name())

	s, err = New(Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, KindEmbedded, s.Name())

	_, err = New(Options{Kind: "pdf"}, nil)
	assert.Error(t, err)
}
