package session

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Sweeper is implemented by stores that need periodic cleanup.
type Sweeper interface {
	Sweep() int
}

// ScheduleSweep registers a job on s that sweeps every store each interval.
// Stores that expire entries on their own (Redis) need not be passed.
func ScheduleSweep(s gocron.Scheduler, every time.Duration, stores ...Sweeper) error {
	if len(stores) == 0 {
		return nil
	}
	_, err := s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			removed := 0
			for _, st := range stores {
				removed += st.Sweep()
			}
			if removed > 0 {
				logrus.WithField("removed", removed).Debug("expired sessions swept")
			}
		}),
		gocron.WithName("session-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	return nil
}
