package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))
	var order []string
	s.AddJob("first", time.Hour, func(context.Context) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	s.AddJob("second", time.Hour, func(context.Context) error {
		order = append(order, "second")
		return nil
	})
	s.AddJob("disabled", 0, func(context.Context) error {
		order = append(order, "disabled")
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(nil)
	assert.NotPanics(t, s.Stop)
}
