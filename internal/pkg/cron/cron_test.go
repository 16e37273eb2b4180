package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestRunOnStartFiresImmediately(t *testing.T) {
	var runs atomic.Int32
	s := New()
	s.Register(Job{
		Name:       "startup",
		Interval:   time.Hour,
		RunOnStart: true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, func() bool { return runs.Load() == 1 })
}

func TestIntervalJobDoesNotFireEarly(t *testing.T) {
	var runs atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "hourly",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("job ran %d times before its interval elapsed", got)
	}
}

func TestManualRun(t *testing.T) {
	var runs atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "manual",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	if err := s.Run(context.Background(), "manual"); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	waitFor(t, func() bool { return runs.Load() == 1 })

	if err := s.Run(context.Background(), "unknown"); err == nil {
		t.Fatal("Run with unknown job name returned nil, want error")
	}
}

func TestListReportsFailureMessage(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "broken",
		Description: "always fails",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			return errors.New("upstream unavailable")
		},
	})

	if err := s.Run(context.Background(), "broken"); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	waitFor(t, func() bool {
		for _, item := range s.List() {
			if item.Name == "broken" && item.Status == StatusReject {
				return true
			}
		}
		return false
	})

	var item ListItem
	for _, it := range s.List() {
		if it.Name == "broken" {
			item = it
		}
	}
	if item.Message != "upstream unavailable" {
		t.Errorf("Message = %q, want failure reason", item.Message)
	}
	if item.LastRunAt == nil {
		t.Error("LastRunAt not set after run")
	}
}
