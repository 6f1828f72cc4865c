package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerationHooks{}
	g.OnGenerateStart(ctx, "physics_tinykep", 42)
	g.OnGenerateComplete(ctx, "physics_tinykep", 10, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)
}

type recordingHooks struct {
	starts    int
	completes int
}

func (r *recordingHooks) OnGenerateStart(context.Context, string, int64) { r.starts++ }
func (r *recordingHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
	r.completes++
}

func TestHookRegistration(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetGenerationHooks(rec)

	Generation().OnGenerateStart(context.Background(), "graph_hub", 1)
	Generation().OnGenerateComplete(context.Background(), "graph_hub", 6, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("recorded %d starts, %d completes, want 1 each", rec.starts, rec.completes)
	}

	// Nil registrations are ignored.
	SetGenerationHooks(nil)
	Generation().OnGenerateStart(context.Background(), "graph_hub", 2)
	if rec.starts != 2 {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingHooks{}
	SetGenerationHooks(rec)
	Reset()

	Generation().OnGenerateStart(context.Background(), "graph_loop", 3)
	if rec.starts != 0 {
		t.Error("Reset should restore the no-op hooks")
	}
}
