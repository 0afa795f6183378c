// Package extract turns one month page into per-day temperature entries.
//
// Two strategies share the Strategy contract: Table reads an HTML table
// located by XPath, Embedded reads the bracketed arrays some sites inline
// into their chart scripts. Neither returns an error; failures come back
// as an empty Result carrying the reason.
package extract

import (
	"fmt"

	"go.uber.org/zap"

	"TempHarvest/internal/model"
)

// Strategy extracts day entries from raw page bytes.
type Strategy interface {
	Name() string
	Extract(page []byte) Result
}

// Result is either success-with-entries (Reason nil) or empty-with-reason.
type Result struct {
	Entries []model.RawDayEntry
	Reason  error
}

// OK reports whether extraction succeeded.
func (r Result) OK() bool { return r.Reason == nil }

// Kind names for config.
const (
	KindTable    = "table"
	KindEmbedded = "embedded"
)

// Options selects and tunes a strategy.
type Options struct {
	Kind    string
	Charset string

	TableXPath    string
	TableMinCells int

	HighVar string
	LowVar  string
	DayVar  string
}

// New builds the strategy named by opts.Kind.
func New(opts Options, log *zap.Logger) (Strategy, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch opts.Kind {
	case KindTable:
		return NewTable(opts.TableXPath, opts.TableMinCells, opts.Charset, log), nil
	case KindEmbedded, "":
		return NewEmbedded(opts.HighVar, opts.LowVar, opts.DayVar, opts.Charset, log), nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q", opts.Kind)
	}
}

func fail(log *zap.Logger, strategy string, reason error) Result {
	log.Warn("extraction produced no entries",
		zap.String("strategy", strategy),
		zap.Error(reason),
	)
	return Result{Reason: reason}
}
