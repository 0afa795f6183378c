package collector

import (
	"context"

	"go.uber.org/zap"

	"TempHarvest/internal/extract"
	"TempHarvest/internal/model"
)

// SeriesBuilder drives the extractor across a month range and rebuilds
// full calendar dates.
type SeriesBuilder struct {
	Fetcher   Fetcher
	Extractor extract.Strategy
	URLs      URLBuilder
	Headers   map[string]string
	Log       *zap.Logger
}

// NewSeriesBuilder creates a new SeriesBuilder.
func NewSeriesBuilder(fetcher Fetcher, extractor extract.Strategy, urls URLBuilder, headers map[string]string, log *zap.Logger) *SeriesBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &SeriesBuilder{
		Fetcher:   fetcher,
		Extractor: extractor,
		URLs:      urls,
		Headers:   headers,
		Log:       log,
	}
}

// Build visits every month of [start, end] in order. A month that fails to
// fetch or extract is logged, recorded in Failures and skipped; it never
// stops the range.
func (b *SeriesBuilder) Build(ctx context.Context, start, end model.MonthKey) *model.Series {
	series := &model.Series{}
	for cur := start; !cur.After(end); cur = cur.Next() {
		series.Visited = append(series.Visited, cur)
		b.collectMonth(ctx, cur, series)
	}
	b.Log.Info("series built",
		zap.Stringer("start", start),
		zap.Stringer("end", end),
		zap.Int("months", len(series.Visited)),
		zap.Int("records", len(series.Records)),
		zap.Int("failures", len(series.Failures)),
	)
	return series
}

func (b *SeriesBuilder) collectMonth(ctx context.Context, month model.MonthKey, series *model.Series) {
	url := b.URLs.URL(month)
	log := b.Log.With(zap.Stringer("month", month), zap.String("url", url))
	log.Info("fetching month")

	page, err := b.Fetcher.Fetch(ctx, url, b.Headers)
	if err != nil {
		log.Warn("skipping month: fetch failed", zap.Error(err))
		series.Failures = append(series.Failures, model.NewMonthFailure(month, url, err))
		return
	}

	res := b.Extractor.Extract(page)
	if !res.OK() {
		log.Warn("skipping month: extraction failed", zap.Error(res.Reason))
		series.Failures = append(series.Failures, model.NewMonthFailure(month, url, res.Reason))
		return
	}

	added := 0
	for _, e := range res.Entries {
		date, err := month.DateFor(e.Day)
		if err != nil {
			log.Warn("skipping day", zap.String("day", e.Day), zap.Error(err))
			series.Failures = append(series.Failures, model.NewMonthFailure(month, url, err))
			continue
		}
		series.Records = append(series.Records, model.TemperatureRecord{Date: date, High: e.High, Low: e.Low})
		added++
	}
	log.Debug("month parsed", zap.Int("entries", len(res.Entries)), zap.Int("records", added))
}
