package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shujaatalirehmat786-hub/slackChatbotNewBackend/internal/history"
)

// Scheduler periodically evicts channel histories that have been idle
// longer than the TTL, so the rolling-history map stays bounded over
// the life of the process.
type Scheduler struct {
	cron *cron.Cron
	spec string
	ttl  time.Duration
	hist *history.Manager
}

func New(spec string, ttl time.Duration, hist *history.Manager) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		spec: spec,
		ttl:  ttl,
		hist: hist,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if n := s.hist.EvictIdle(s.ttl); n > 0 {
			log.Printf("🧹 evicted %d idle channel histories", n)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("📅 history janitor scheduled (%q, ttl %s)", s.spec, s.ttl)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("📅 history janitor stopped")
}
