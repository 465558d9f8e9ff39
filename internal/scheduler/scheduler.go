package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/config"
	"github.com/pureclean/platform/internal/repository/sheets"
	"github.com/pureclean/platform/internal/service/reporting"
)

// Scheduler runs the nightly report snapshot: one DailyReport per company,
// persisted to the store and optionally appended to the Google Sheet. The
// snapshot covers the calendar day the job fires on, so the schedule must
// fire before midnight in the configured timezone.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	exporter     sheets.Exporter
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The exporter may be nil
// when the Sheets export is not configured.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshot() {
	s.logger.Info("generating daily report snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reports, err := s.reportingSvc.SnapshotDay(ctx, time.Now())
	if err != nil {
		s.logger.Error("daily snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("daily snapshots stored", zap.Int("companies", len(reports)))

	if s.exporter == nil {
		return
	}
	for _, report := range reports {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("sheet export failed",
				zap.String("company_id", report.CompanyID), zap.Error(err))
		}
	}
}
