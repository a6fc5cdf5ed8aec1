package cronjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader is anything that can refresh its documents on demand.
type Reloader interface {
	Load(ctx context.Context) error
}

type Scheduler struct {
	schedule string
	timeout  time.Duration
	targets  []Reloader
	c        *cron.Cron
}

// NewScheduler builds a scheduler running every target on a six-field cron schedule
// (seconds first). An empty schedule yields a scheduler that never fires.
func NewScheduler(schedule string, timeout time.Duration, targets ...Reloader) *Scheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{schedule: schedule, timeout: timeout, targets: targets}
}

func (s *Scheduler) Start() error {
	if s.schedule == "" {
		log.Println("[info] route refresh schedule disabled")
		return nil
	}

	s.c = cron.New(cron.WithSeconds())
	if _, err := s.c.AddFunc(s.schedule, s.runOnce); err != nil {
		return fmt.Errorf("add refresh job %q: %w", s.schedule, err)
	}

	log.Printf("[info] route refresh scheduled cron=%q", s.schedule)
	s.c.Start()
	return nil
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	for _, t := range s.targets {
		if err := t.Load(ctx); err != nil {
			log.Printf("[error] operation=scheduled_refresh error=%v", err)
		}
	}
}
