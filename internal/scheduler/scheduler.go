package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/internal/board/service"
)

// Auditor runs the board integrity check.
type Auditor interface {
	Audit(ctx context.Context) (service.AuditReport, error)
}

// Scheduler runs the board audit on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	auditor Auditor
	logger  *log.Logger
	timeout time.Duration
}

// parser accepts standard five-field specs, an optional leading seconds
// field, and descriptors such as "@every 1h".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func NewScheduler(auditor Auditor, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		auditor: auditor,
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// Start registers the audit job under spec and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid audit schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", spec).Info("audit scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running audit to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce runs a single audit and logs its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) (service.AuditReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	report, err := s.auditor.Audit(ctx)
	if err != nil {
		s.logger.WithError(err).Error("board audit failed")
		return report, err
	}

	entry := s.logger.WithFields(log.Fields{
		"boards_checked": report.BoardsChecked,
		"violations":     len(report.Violations),
		"duration":       time.Since(start).String(),
	})
	if report.OK() {
		entry.Info("board audit completed")
	} else {
		entry.Warn("board audit found violations")
	}
	return report, nil
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct {
	logger *log.Logger
}

func fields(keysAndValues []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			f[k] = keysAndValues[i+1]
		}
	}
	return f
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Debug("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).WithError(err).Error("cron: " + msg)
}
