package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TempHarvest/internal/collector"
	"TempHarvest/internal/config"
	"TempHarvest/internal/model"
	"TempHarvest/internal/notifier"
	"TempHarvest/internal/recorder"
	"TempHarvest/internal/report"
	"TempHarvest/internal/store"
	"TempHarvest/internal/visualize"
)

// Scheduler runs the harvest pipeline once or on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Config   *config.Config
	Builder  *collector.SeriesBuilder
	Charts   *visualize.Renderer
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Log      *zap.Logger
	Ctx      context.Context

	now func() time.Time
	mu  sync.Mutex     // one run at a time
	wg  sync.WaitGroup // runs started outside cron
}

// NewScheduler creates a new Scheduler. charts and tn may be nil.
func NewScheduler(ctx context.Context, cfg *config.Config, builder *collector.SeriesBuilder, charts *visualize.Renderer,
	tn *notifier.TelegramNotifier, rec recorder.Recorder, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Config:   cfg,
		Builder:  builder,
		Charts:   charts,
		Notifier: tn,
		Recorder: rec,
		Log:      log,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// Register adds the harvest job under cronSpec (seconds field first).
func (s *Scheduler) Register(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.harvestTask); err != nil {
		return fmt.Errorf("register harvest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs to finish,
// including those started by HandleCommand.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.Log.Info("scheduler stopped")
}

func (s *Scheduler) harvestTask() {
	if _, err := s.RunOnce(); err != nil {
		s.Log.Error("scheduled harvest failed", zap.Error(err))
	}
}

// RunOnce executes the full pipeline. Per-month failures are reported in
// the summary; only range resolution and persistence errors are returned.
func (s *Scheduler) RunOnce() (*model.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.Config
	startedAt := s.now()
	start, end, err := cfg.ResolveRange(startedAt)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := s.Log.With(zap.String("run_id", runID), zap.String("city", cfg.Source.City))
	log.Info("harvest started", zap.Stringer("start", start), zap.Stringer("end", end))

	series := s.Builder.Build(s.Ctx, start, end)

	// An empty series keeps the previous file and charts.
	written := len(series.Records) > 0
	if written {
		if err := store.WriteCSV(cfg.Output.CSVPath, series.Records, store.Layout(cfg.Output.Columns)); err != nil {
			s.trySend(fmt.Sprintf("❌ 温度数据写入失败: %v", err))
			return nil, fmt.Errorf("persist series: %w", err)
		}
	} else {
		log.Warn("no records collected, keeping existing csv", zap.String("path", cfg.Output.CSVPath))
	}

	summary := &model.RunSummary{
		ID:         runID,
		City:       cfg.Source.City,
		Start:      start.String(),
		End:        end.String(),
		StartedAt:  startedAt,
		FinishedAt: s.now(),
		Months:     len(series.Visited),
		Records:    len(series.Records),
		CSVPath:    cfg.Output.CSVPath,
		Failures:   series.Failures,
	}

	if cfg.Output.ReportPath != "" {
		if err := report.Save(cfg.Output.ReportPath, summary); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	s.record(log, summary, series.Records)

	if s.Charts != nil && written {
		out := visualize.Outputs{
			LineGIF:    cfg.Charts.LineGIF,
			HeatmapGIF: cfg.Charts.HeatmapGIF,
			BoxplotPNG: cfg.Charts.BoxplotPNG,
		}
		if err := s.Charts.RenderAll(cfg.Output.CSVPath, out); err != nil {
			log.Error("render charts", zap.Error(err))
		}
	}

	log.Info("harvest finished",
		zap.Int("months", summary.Months),
		zap.Int("records", summary.Records),
		zap.Int("failures", len(summary.Failures)),
		zap.Duration("elapsed", summary.FinishedAt.Sub(startedAt)),
	)
	s.trySend(notifier.FormatRunSummary(summary))
	return summary, nil
}

func (s *Scheduler) record(log *zap.Logger, summary *model.RunSummary, records []model.TemperatureRecord) {
	if err := s.Recorder.RecordRun(summary); err != nil {
		log.Error("record run", zap.Error(err))
	}
	if err := s.Recorder.RecordTemperatures(summary.ID, summary.City, records); err != nil {
		log.Error("record temperatures", zap.Error(err))
	}
	if err := s.Recorder.RecordFailures(summary.ID, summary.Failures); err != nil {
		log.Error("record failures", zap.Error(err))
	}
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run", "立即采集":
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.harvestTask()
		}()
		return "⏳ 采集已开始"
	case "/status", "查看状态":
		last, err := s.lastRun()
		if err != nil {
			return fmt.Sprintf("读取运行报告失败: %v", err)
		}
		if last.ID == "" {
			return "尚无运行记录"
		}
		return notifier.FormatRunSummary(last)
	case "/failures", "查看失败":
		last, err := s.lastRun()
		if err != nil {
			return fmt.Sprintf("读取运行报告失败: %v", err)
		}
		return notifier.FormatFailures(last.Failures)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) lastRun() (*model.RunSummary, error) {
	if s.Config.Output.ReportPath == "" {
		return &model.RunSummary{}, nil
	}
	return report.Load(s.Config.Output.ReportPath)
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Error("send notification", zap.Error(err))
	}
}
