package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"canvaspilot.io/canvaspilot/internal/pkg/logger"
)

func newTestPools(t *testing.T) *Pools {
	t.Helper()
	_ = logger.Init("error", "json")

	pools, err := NewPools(context.Background(), DefaultPoolConfig())
	if err != nil {
		t.Fatalf("NewPools() error = %v", err)
	}
	t.Cleanup(pools.Shutdown)
	return pools
}

func TestSubmitRunsTask(t *testing.T) {
	pools := newTestPools(t)

	var wg sync.WaitGroup
	wg.Add(1)
	ran := false
	err := pools.General.Submit(context.Background(), func(ctx context.Context) {
		ran = true
		wg.Done()
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	wg.Wait()
	if !ran {
		t.Error("task did not run")
	}
}

func TestSubmitCancelledContext(t *testing.T) {
	pools := newTestPools(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pools.General.Submit(ctx, func(ctx context.Context) {
		t.Error("task should not run with cancelled context")
	})
	if err != context.Canceled {
		t.Errorf("Submit() error = %v, want context.Canceled", err)
	}
}

func TestSubmitDetachedOutlivesRequest(t *testing.T) {
	pools := newTestPools(t)

	done := make(chan struct{})
	err := pools.SubmitDetached(pools.Broadcast, func(ctx context.Context) {
		close(done)
	})
	if err != nil {
		t.Fatalf("SubmitDetached() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("detached task did not run")
	}
}
