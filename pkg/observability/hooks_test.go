package observability

import (
	"context"
	"testing"
	"time"
)

type testPipelineHooks struct {
	NoopPipelineHooks
	loads int
}

func (h *testPipelineHooks) OnLoadStart(context.Context, string) { h.loads++ }

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "job.json")
	p.OnLoadComplete(ctx, "job.json", 3, time.Second, nil)
	p.OnExportStart(ctx, "model")
	p.OnExportComplete(ctx, "model", 29, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "document")
	c.OnCacheMiss(ctx, "document")
	c.OnCacheSet(ctx, "document", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	ph := &testPipelineHooks{}
	SetPipelineHooks(ph)
	Pipeline().OnLoadStart(context.Background(), "job.json")
	if ph.loads != 1 {
		t.Errorf("loads = %d, want 1", ph.loads)
	}

	ch := &testCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(context.Background(), "document")
	if ch.hits != 1 {
		t.Errorf("hits = %d, want 1", ch.hits)
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(ph) {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore NoopPipelineHooks")
	}
}
