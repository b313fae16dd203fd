package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Service runs a single job on a schedule until stopped.
type Service struct {
	schedule Schedule
	run      func()
	logger   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewService creates a scheduler service. The schedule is validated up
// front so a bad cron expression fails at startup, not at first tick.
func NewService(schedule Schedule, run func(), logger zerolog.Logger) (*Service, error) {
	if run == nil {
		return nil, fmt.Errorf("run callback is required")
	}
	if _, err := schedule.Next(time.Now()); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	return &Service{
		schedule: schedule,
		run:      run,
		logger:   logger,
	}, nil
}

// Start schedules the first run.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.scheduleNext()
	s.logger.Info().
		Str("kind", string(s.schedule.Kind)).
		Msg("retention scheduler started")
}

// Stop cancels any pending run.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.logger.Info().Msg("retention scheduler stopped")
}

// scheduleNext arms the timer for the next run. Caller holds s.mu.
func (s *Service) scheduleNext() {
	next, err := s.schedule.Next(time.Now())
	if err != nil {
		// Validated in NewService; a failure here means the clock is
		// past cron's supported range.
		s.logger.Warn().Err(err).Msg("failed to compute next run")
		return
	}

	delay := time.Until(next)
	if delay < 0 {
		delay = 0
	}

	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.run()

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.stopped {
			s.scheduleNext()
		}
	})
}
