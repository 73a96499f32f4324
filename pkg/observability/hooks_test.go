package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOperationHooks{}
	o.OnOperation(ctx, "split", true, 0, time.Millisecond)
	o.OnAdjust(ctx, "proportional", 2, time.Millisecond, nil)

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", "layout", true, time.Millisecond, nil)
	s.OnSave(ctx, "file", "layout", 512, time.Millisecond, nil)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/split")
	h.OnResponse(ctx, "POST", "/split", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Operations().(NoopOperationHooks); !ok {
		t.Error("Operations() should return NoopOperationHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	ops := &testOperationHooks{}
	SetOperationHooks(ops)
	Operations().OnOperation(context.Background(), "delete", false, 1, 0)
	if ops.calls != 1 || ops.lastOp != "delete" {
		t.Errorf("OnOperation calls = %d op = %q, want 1 delete", ops.calls, ops.lastOp)
	}

	st := &testStoreHooks{}
	SetStoreHooks(st)
	Store().OnSave(context.Background(), "memory", "k", 10, 0, nil)
	if st.saves != 1 {
		t.Errorf("OnSave calls = %d, want 1", st.saves)
	}

	// nil leaves the current hooks in place
	SetOperationHooks(nil)
	if Operations() != ops {
		t.Error("SetOperationHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Operations().(NoopOperationHooks); !ok {
		t.Error("Reset() should restore NoopOperationHooks")
	}
}

type testOperationHooks struct {
	NoopOperationHooks
	calls  int
	lastOp string
}

func (h *testOperationHooks) OnOperation(_ context.Context, op string, _ bool, _ int, _ time.Duration) {
	h.calls++
	h.lastOp = op
}

type testStoreHooks struct {
	NoopStoreHooks
	saves int
}

func (h *testStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error) {
	h.saves++
}
