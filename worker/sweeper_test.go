package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSweeper_RunsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	s := &Sweeper{
		Interval: 5 * time.Millisecond,
		Grace:    time.Hour,
		Sweep: func(ctx context.Context, olderThan time.Time) (int64, error) {
			calls.Add(1)
			if since := time.Since(olderThan); since < 59*time.Minute || since > 61*time.Minute {
				t.Errorf("cutoff %v before now, want ~1h grace", since)
			}
			return 1, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("sweeper ran %d times, want >= 3", calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
