package extract

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"TempHarvest/internal/model"
)

const (
	DefaultHighVar = "hightemp"
	DefaultLowVar  = "lowtemp"
	DefaultDayVar  = "timeaxis"
)

// Embedded reads three named array literals, e.g.
//
//	var hightemp = ["30","31"];
//	var lowtemp = ["20","21"];
//	var timeaxis = ["1","2"];
//
// and zips them by index.
type Embedded struct {
	high, low, day *namedArray
	charset        string
	log            *zap.Logger
}

type namedArray struct {
	name string
	re   *regexp.Regexp
}

func newNamedArray(name string) *namedArray {
	return &namedArray{
		name: name,
		re:   regexp.MustCompile(`var\s+` + regexp.QuoteMeta(name) + `\s*=\s*\[([^\]]*)\]\s*;`),
	}
}

// find returns the array elements and whether the variable is present.
func (a *namedArray) find(text string) ([]string, bool) {
	m := a.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return splitElements(m[1]), true
}

// NewEmbedded builds the strategy; empty names fall back to the defaults.
func NewEmbedded(highVar, lowVar, dayVar, charset string, log *zap.Logger) *Embedded {
	if highVar == "" {
		highVar = DefaultHighVar
	}
	if lowVar == "" {
		lowVar = DefaultLowVar
	}
	if dayVar == "" {
		dayVar = DefaultDayVar
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Embedded{
		high:    newNamedArray(highVar),
		low:     newNamedArray(lowVar),
		day:     newNamedArray(dayVar),
		charset: charset,
		log:     log,
	}
}

func (e *Embedded) Name() string { return KindEmbedded }

// Extract never fails loudly: a missing array or mismatched lengths yield an
// empty Result with the reason set.
func (e *Embedded) Extract(page []byte) Result {
	text := decodePage(page, e.charset)

	var missing []string
	highs, ok := e.high.find(text)
	if !ok {
		missing = append(missing, e.high.name)
	}
	lows, ok := e.low.find(text)
	if !ok {
		missing = append(missing, e.low.name)
	}
	days, ok := e.day.find(text)
	if !ok {
		missing = append(missing, e.day.name)
	}
	if len(missing) > 0 {
		return fail(e.log, e.Name(), fmt.Errorf("%w: missing arrays %s", model.ErrParse, strings.Join(missing, ", ")))
	}

	if len(highs) != len(days) || len(lows) != len(days) {
		return fail(e.log, e.Name(), fmt.Errorf("%w: array lengths differ: %s=%d %s=%d %s=%d",
			model.ErrValidation,
			e.day.name, len(days), e.high.name, len(highs), e.low.name, len(lows)))
	}

	entries := make([]model.RawDayEntry, len(days))
	for i := range days {
		entries[i] = model.RawDayEntry{Day: days[i], High: highs[i], Low: lows[i]}
	}
	return Result{Entries: entries}
}

// splitElements splits an array body on commas and strips whitespace and quotes.
// An empty body is an empty array; a trailing comma is ignored.
func splitElements(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	parts := strings.Split(body, ",")
	// A trailing comma leaves one blank element behind.
	if n := len(parts); n > 1 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return out
}
