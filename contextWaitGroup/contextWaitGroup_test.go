package contextWaitGroup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStopEndsAll(t *testing.T) {
	c := New(context.Background())

	var n atomic.Int32
	for range 3 {
		c.Go(func(ctx context.Context) {
			<-ctx.Done()
			n.Add(1)
		})
	}
	c.Go(func(context.Context) {
		c.Stop()
	})

	if err := c.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if n.Load() != 3 {
		t.Fatalf("%d goroutines saw the stop", n.Load())
	}
}

func TestParentDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := New(parent)
	c.Go(func(ctx context.Context) {
		<-ctx.Done()
	})
	if err := c.Wait(); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestCtxLiveUntilStop(t *testing.T) {
	c := New(context.Background())
	if c.Ctx().Err() != nil {
		t.Fatalf("context done before Stop")
	}
	c.Stop()
	if c.Ctx().Err() == nil {
		t.Fatalf("context alive after Stop")
	}
	c.Wait()
}
