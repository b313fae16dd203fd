package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceValidatesSchedule(t *testing.T) {
	t.Run("requires run callback", func(t *testing.T) {
		_, err := NewService(Schedule{Kind: ScheduleKindEvery, Every: time.Second}, nil, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("rejects bad schedule up front", func(t *testing.T) {
		_, err := NewService(Schedule{Kind: ScheduleKindCron, Expr: "bogus"}, func() {}, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestServiceRunsOnInterval(t *testing.T) {
	var runs atomic.Int64

	svc, err := NewService(Schedule{Kind: ScheduleKindEvery, Every: 20 * time.Millisecond}, func() {
		runs.Add(1)
	}, zerolog.Nop())
	require.NoError(t, err)

	svc.Start()
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServiceStopPreventsFurtherRuns(t *testing.T) {
	var runs atomic.Int64

	svc, err := NewService(Schedule{Kind: ScheduleKindEvery, Every: 20 * time.Millisecond}, func() {
		runs.Add(1)
	}, zerolog.Nop())
	require.NoError(t, err)

	svc.Start()
	svc.Stop()

	// Let any in-flight timer drain before sampling.
	time.Sleep(50 * time.Millisecond)
	settled := runs.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, runs.Load())

	// Stop twice is fine.
	svc.Stop()
}
