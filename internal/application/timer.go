package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
)

// TimerState is the lifecycle of a countdown: running -> expiring -> done.
type TimerState int32

const (
	TimerRunning TimerState = iota
	TimerExpiring
	TimerDone
)

// Timer is an in-process countdown rendered as a message edited every tick.
// Timers are not persisted: a restart drops them.
type Timer struct {
	ID        string // id du message de compte à rebours
	EventID   string
	ChannelID string
	EndsAt    time.Time

	state  atomic.Int32
	cancel context.CancelFunc
}

func (t *Timer) State() TimerState {
	return TimerState(t.state.Load())
}

func (t *Timer) Stop() {
	t.cancel()
}

type countdown struct {
	EventID   string
	ChannelID string
	Duration  time.Duration
	Render    func(remaining time.Duration) string
	Final     string
}

type timerMessenger interface {
	output.MessageSender
	output.MessageEditor
}

// TimerRegistry owns every running countdown, keyed by its message id.
type TimerRegistry struct {
	mu     sync.Mutex
	timers map[string]*Timer
	wg     sync.WaitGroup
	tick   time.Duration
	now    func() time.Time
	// onSent receives every message a timer posted once the timer is over:
	// the countdown message is never expired while it is still counting.
	onSent func(channelID, messageID string)
}

func NewTimerRegistry(tick time.Duration, now func() time.Time, onSent func(channelID, messageID string)) *TimerRegistry {
	if tick <= 0 {
		tick = 2 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	if onSent == nil {
		onSent = func(string, string) {}
	}
	return &TimerRegistry{timers: map[string]*Timer{}, tick: tick, now: now, onSent: onSent}
}

// Start posts the initial countdown message and ticks until expiry or until
// ctx is cancelled. ctx must outlive the triggering interaction.
func (r *TimerRegistry) Start(ctx context.Context, m timerMessenger, c countdown) (*Timer, error) {
	endsAt := r.now().Add(c.Duration)
	msgID, err := m.SendText(ctx, c.ChannelID, c.Render(c.Duration))
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithCancel(ctx)
	t := &Timer{ID: msgID, EventID: c.EventID, ChannelID: c.ChannelID, EndsAt: endsAt, cancel: cancel}

	r.mu.Lock()
	r.timers[msgID] = t
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer logging.Recover()
		defer r.wg.Done()
		defer cancel()
		r.run(tctx, m, t, c)
	}()
	return t, nil
}

func (r *TimerRegistry) run(ctx context.Context, m timerMessenger, t *Timer, c countdown) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	defer r.finish(t)
	defer r.onSent(c.ChannelID, t.ID)

	editing := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		remaining := t.EndsAt.Sub(r.now())
		if remaining <= 0 {
			t.state.Store(int32(TimerExpiring))
			r.remove(t)
			msgID, err := m.SendText(ctx, c.ChannelID, c.Final)
			if err != nil {
				logging.Error("Envoi du message de fin de minuterie", err)
				return
			}
			r.onSent(c.ChannelID, msgID)
			return
		}
		if !editing {
			continue
		}

		// Une édition ratée laisse simplement l'ancien texte jusqu'au prochain tick.
		if err := m.EditText(ctx, c.ChannelID, t.ID, c.Render(remaining)); errors.Is(err, output.ErrMessageNotFound) {
			log.Printf("⚠️ Message de minuterie %s supprimé, le compte à rebours continue sans affichage", t.ID)
			editing = false
		}
	}
}

func (r *TimerRegistry) finish(t *Timer) {
	r.remove(t)
	t.state.Store(int32(TimerDone))
}

func (r *TimerRegistry) remove(t *Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timers[t.ID] == t {
		delete(r.timers, t.ID)
	}
}

// Remaining returns the time left on the running timer of channelID that
// ends soonest.
func (r *TimerRegistry) Remaining(channelID string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	var best time.Duration
	found := false
	for _, t := range r.timers {
		if t.ChannelID != channelID || t.State() != TimerRunning {
			continue
		}
		left := t.EndsAt.Sub(now)
		if left <= 0 {
			continue
		}
		if !found || left < best {
			best, found = left, true
		}
	}
	return best, found
}

func (r *TimerRegistry) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Wait blocks until every timer goroutine has returned.
func (r *TimerRegistry) Wait() {
	r.wg.Wait()
}
