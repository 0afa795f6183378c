package extract

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"TempHarvest/internal/model"
)

const DefaultTableXPath = "//table"

// Table reads the first table matching an XPath expression. The first row is
// treated as the header; each following row yields one entry from its
// first, second and (when present) third cells.
type Table struct {
	xpath    string
	minCells int
	charset  string
	log      *zap.Logger
}

// NewTable builds the strategy. minCells below 2 is raised to 2.
func NewTable(xpath string, minCells int, charset string, log *zap.Logger) *Table {
	if xpath == "" {
		xpath = DefaultTableXPath
	}
	if minCells < 2 {
		minCells = 2
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{xpath: xpath, minCells: minCells, charset: charset, log: log}
}

func (t *Table) Name() string { return KindTable }

func (t *Table) Extract(page []byte) Result {
	doc, err := htmlquery.Parse(strings.NewReader(decodePage(page, t.charset)))
	if err != nil {
		return fail(t.log, t.Name(), fmt.Errorf("%w: parse html: %v", model.ErrParse, err))
	}
	tables, err := htmlquery.QueryAll(doc, t.xpath)
	if err != nil {
		return fail(t.log, t.Name(), fmt.Errorf("%w: xpath %q: %v", model.ErrParse, t.xpath, err))
	}
	if len(tables) == 0 {
		return fail(t.log, t.Name(), fmt.Errorf("%w: no table matches %q", model.ErrParse, t.xpath))
	}

	rows, err := htmlquery.QueryAll(tables[0], ".//tr")
	if err != nil {
		return fail(t.log, t.Name(), fmt.Errorf("%w: rows: %v", model.ErrParse, err))
	}

	var entries []model.RawDayEntry
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cells, err := htmlquery.QueryAll(row, "./td")
		if err != nil || len(cells) < t.minCells {
			continue
		}
		e := model.RawDayEntry{
			Day:  strings.TrimSpace(htmlquery.InnerText(cells[0])),
			High: strings.TrimSpace(htmlquery.InnerText(cells[1])),
		}
		if len(cells) > 2 {
			e.Low = strings.TrimSpace(htmlquery.InnerText(cells[2]))
		}
		entries = append(entries, e)
	}
	return Result{Entries: entries}
}
