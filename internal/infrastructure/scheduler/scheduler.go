// Package scheduler runs the periodic scans of the bot on a cron.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"eventbot/internal/infrastructure/logging"
)

const (
	ReminderSpec = "@every 15s"
	RefreshSpec  = "@every 1m"
)

// Scans is what the scheduler drives.
type Scans interface {
	ScanReminders(ctx context.Context, now time.Time) int
	RefreshAll(ctx context.Context)
}

// Scheduler runs the reminder and refresh scans. A scan still running when
// its next tick fires is skipped.
type Scheduler struct {
	cron   *cron.Cron
	scans  Scans
	now    func() time.Time
	ctx    context.Context
	cancel context.CancelFunc
}

func New(scans Scans, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	logger := cron.PrintfLogger(log.Default())
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(logger)), cron.WithLogger(cron.DiscardLogger)),
		scans:  scans,
		now:    now,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers both scans and starts the cron in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(ReminderSpec, s.RunReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(RefreshSpec, s.RunRefresh); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ Planificateur démarré (rappels %s, rafraîchissement %s)", ReminderSpec, RefreshSpec)
	return nil
}

// Stop cancels running scans and waits for them.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

func (s *Scheduler) RunReminders() {
	defer logging.Recover()
	if n := s.scans.ScanReminders(s.ctx, s.now()); n > 0 {
		log.Printf("🔔 %d rappel(s) envoyé(s)", n)
	}
}

func (s *Scheduler) RunRefresh() {
	defer logging.Recover()
	s.scans.RefreshAll(s.ctx)
}
