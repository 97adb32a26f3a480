package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSender struct {
	calls atomic.Int32
	err   error
	panic bool
}

func (c *countingSender) SendDue(ctx context.Context) (int, error) {
	c.calls.Add(1)
	if c.panic {
		panic("boom")
	}
	return 1, c.err
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(&countingSender{}, "not a cron", time.UTC, zap.NewNop())
	assert.Error(t, err)
}

func TestScheduler_SendRemindersSurvivesErrors(t *testing.T) {
	sender := &countingSender{err: errors.New("db is down")}
	s, err := NewScheduler(sender, "@every 1h", time.UTC, zap.NewNop())
	require.NoError(t, err)

	s.sendReminders()
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	sender := &countingSender{}
	s, err := NewScheduler(sender, "@every 1h", time.UTC, zap.NewNop())
	require.NoError(t, err)

	s.Start(context.Background())
	s.Stop()
	assert.Equal(t, int32(0), sender.calls.Load())
}

func TestScheduler_RecoversFromPanickingJob(t *testing.T) {
	sender := &countingSender{panic: true}
	s, err := NewScheduler(sender, "@every 1h", time.UTC, zap.NewNop())
	require.NoError(t, err)

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	assert.NotPanics(t, func() { entries[0].WrappedJob.Run() })
	assert.Equal(t, int32(1), sender.calls.Load())
}
