package discord

import (
	"time"

	"eventbot/internal/infrastructure/scheduler"
)

// startScheduler runs the reminder and refresh scans while the bot is online.
func (b *Bot) startScheduler() error {
	b.scheduler = scheduler.New(b.service, time.Now)
	return b.scheduler.Start()
}

func (b *Bot) stopScheduler() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
}
