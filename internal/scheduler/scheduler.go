package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduleKind selects how the next run is computed.
type ScheduleKind string

const (
	// ScheduleKindEvery runs at a fixed interval.
	ScheduleKindEvery ScheduleKind = "every"
	// ScheduleKindCron runs per a standard 5-field cron expression.
	ScheduleKindCron ScheduleKind = "cron"
)

// Schedule describes when retention passes run.
type Schedule struct {
	Kind  ScheduleKind
	Every time.Duration // for ScheduleKindEvery
	Expr  string        // for ScheduleKindCron
}

// Next calculates the schedule's next run strictly after from.
func (s Schedule) Next(from time.Time) (time.Time, error) {
	switch s.Kind {
	case ScheduleKindEvery:
		if s.Every <= 0 {
			return time.Time{}, fmt.Errorf("'every' schedule requires a positive interval")
		}
		return from.Add(s.Every), nil
	case ScheduleKindCron:
		if s.Expr == "" {
			return time.Time{}, fmt.Errorf("'cron' schedule requires 'expr' field")
		}
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		sched, err := parser.Parse(s.Expr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
		}
		return sched.Next(from), nil
	default:
		return time.Time{}, fmt.Errorf("unknown schedule kind: %s", s.Kind)
	}
}
