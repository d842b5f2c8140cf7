package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/workaholic/backend/usecase/notify"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// SchedulerConfig controls the background due-task loop.
type SchedulerConfig struct {
	Interval time.Duration
}

// NotificationScheduler fires one scan-and-dispatch pass at a fixed interval
// for the lifetime of the process. Firings are logically sequential: an
// in-progress flag skips a tick while the previous pass still runs, and a
// failing pass is logged, never fatal to the timer.
type NotificationScheduler struct {
	pipeline *notify.Service
	monitor  ConnectionHealth
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      SchedulerConfig
	running  atomic.Bool
}

func NewNotificationScheduler(
	pipeline *notify.Service,
	monitor ConnectionHealth,
	logger *zap.Logger,
	cfg SchedulerConfig,
) *NotificationScheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ns := &NotificationScheduler{
		pipeline: pipeline,
		monitor:  monitor,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = ns.cron.AddFunc(schedule, ns.tick)

	return ns
}

// Start launches the cron scheduler.
func (ns *NotificationScheduler) Start() {
	if ns == nil || ns.cron == nil {
		return
	}
	ns.cron.Start()
	ns.logger.Info("notification scheduler started", zap.Duration("interval", ns.cfg.Interval))
}

// Stop gracefully stops the scheduler, waiting for a running pass.
func (ns *NotificationScheduler) Stop(ctx context.Context) {
	if ns == nil || ns.cron == nil {
		return
	}
	stopCtx := ns.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	ns.logger.Info("notification scheduler stopped")
}

func (ns *NotificationScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), ns.cfg.Interval)
	defer cancel()
	ns.RunPass(ctx)
}

// RunPass executes one scan-and-dispatch pass. It returns the number of
// notification attempts, or -1 when the pass was skipped because another is
// still in flight or the store is offline.
func (ns *NotificationScheduler) RunPass(ctx context.Context) int {
	if !ns.running.CompareAndSwap(false, true) {
		ns.logger.Warn("previous pass still running, skipping tick")
		return -1
	}
	defer ns.running.Store(false)

	if ns.monitor != nil && !ns.monitor.IsOnline() {
		ns.logger.Debug("store offline, skipping pass")
		return -1
	}

	attempted, err := ns.pipeline.RunWindowPass(ctx, time.Now())
	if err != nil {
		ns.logger.Error("due-task pass failed", zap.Error(err))
		return attempted
	}
	if attempted > 0 {
		ns.logger.Info("due-task pass completed", zap.Int("attempted", attempted))
	}
	return attempted
}
