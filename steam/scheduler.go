package steam

import (
	"time"

	"github.com/go-co-op/gocron/v2"
)

const PUSH_TAG = "steam|PUSH"

type Scheduler struct {
	gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		Scheduler: scheduler,
	}, nil
}

// AddDurationJob runs jobFunc every interval. A run that is still going when
// the next one is due delays it instead of overlapping.
func (s *Scheduler) AddDurationJob(interval time.Duration, tag string, jobFunc interface{}) error {
	_, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(jobFunc),
		gocron.WithTags(tag),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (s *Scheduler) CancelJob(tag string) {
	s.RemoveByTags(tag)
}
