package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shepherd/internal/domain/services"
)

// Scheduler drives the periodic content scans. Sermons and prayer
// requests run on independent intervals.
type Scheduler struct {
	moderation services.ModerationService
	sermonTick time.Duration
	prayerTick time.Duration
	logger     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler.
func NewScheduler(moderation services.ModerationService, sermonTick, prayerTick time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		moderation: moderation,
		sermonTick: sermonTick,
		prayerTick: prayerTick,
		logger:     logger,
	}
}

// Start launches the scan loops. Call Stop to shut them down.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go s.loop(ctx, "sermon", s.sermonTick, s.moderation.ScanSermons)
	go s.loop(ctx, "prayer_request", s.prayerTick, s.moderation.ScanPrayerRequests)

	s.logger.Info("content scan scheduler started",
		"sermon_interval", s.sermonTick,
		"prayer_interval", s.prayerTick,
	)
}

// Stop cancels the scan loops and waits for them to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.logger.Info("content scan scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, scan func(context.Context) error) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := scan(ctx); err != nil {
				s.logger.Error("scheduled scan failed", "target", name, "error", err)
			}
		}
	}
}
