package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "working...")
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	if s.Cancelled() != true {
		// Stop cancels the internal context.
		t.Error("Cancelled() = false after Stop")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "idle")
	// stopped channel is closed by the Start goroutine; without Start it
	// must be closed on Stop to avoid blocking forever.
	done := make(chan struct{})
	go func() {
		s.Start()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "cancellable")
	s.Start()
	cancel()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancel")
	}
	s.Stop()
}
