// ABOUTME: Tests for the transient handle manager.
// ABOUTME: Covers release discipline, double release, and scoped cleanup.

package handles

import (
	"bytes"
	"testing"
)

func TestAcquireAndResolve(t *testing.T) {
	mgr := NewManager()
	payload := []byte{0xff, 0xd8, 0x01}

	h := mgr.Acquire(payload, ScopeStored)
	got, ok := mgr.Resolve(h)
	if !ok {
		t.Fatal("expected handle to resolve")
	}
	if !bytes.Equal(got, payload) {
		t.Error("resolved bytes differ from payload")
	}
}

func TestReleaseDropsHandle(t *testing.T) {
	mgr := NewManager()

	h := mgr.Acquire([]byte{1}, ScopeStored)
	mgr.Release(h)

	if _, ok := mgr.Resolve(h); ok {
		t.Error("released handle must not resolve")
	}
	if mgr.Live() != 0 {
		t.Errorf("expected 0 live handles, got %d", mgr.Live())
	}
}

func TestDoubleReleaseIsNoOp(t *testing.T) {
	mgr := NewManager()

	h := mgr.Acquire([]byte{1}, ScopePending)
	mgr.Release(h)
	mgr.Release(h)
	mgr.Release(Handle(9999))

	if mgr.Live() != 0 {
		t.Errorf("expected 0 live handles, got %d", mgr.Live())
	}
}

func TestReleaseInAnyOrderReturnsToZero(t *testing.T) {
	mgr := NewManager()

	const n = 50
	hs := make([]Handle, 0, n)
	for i := 0; i < n; i++ {
		hs = append(hs, mgr.Acquire([]byte{byte(i)}, ScopeStored))
	}
	if mgr.Live() != n {
		t.Fatalf("expected %d live handles, got %d", n, mgr.Live())
	}

	// Release out of order: evens descending, then odds ascending.
	for i := n - 2; i >= 0; i -= 2 {
		mgr.Release(hs[i])
	}
	for i := 1; i < n; i += 2 {
		mgr.Release(hs[i])
	}
	if mgr.Live() != 0 {
		t.Errorf("expected 0 live handles, got %d", mgr.Live())
	}
}

func TestHandlesAreNotReused(t *testing.T) {
	mgr := NewManager()

	first := mgr.Acquire([]byte{1}, ScopeStored)
	mgr.Release(first)
	second := mgr.Acquire([]byte{2}, ScopeStored)

	if first == second {
		t.Error("released token must not be reissued")
	}
	if _, ok := mgr.Resolve(first); ok {
		t.Error("stale handle must not resolve to the new payload")
	}
}

func TestReleaseScope(t *testing.T) {
	mgr := NewManager()

	pending := mgr.Acquire([]byte{1}, ScopePending)
	stored := mgr.Acquire([]byte{2}, ScopeStored)

	// Cancelled edit drops the pending buffer only.
	mgr.ReleaseScope(ScopePending)

	if _, ok := mgr.Resolve(pending); ok {
		t.Error("pending handle must be gone after scope release")
	}
	if _, ok := mgr.Resolve(stored); !ok {
		t.Error("stored handle must survive pending scope release")
	}
	if mgr.Live() != 1 {
		t.Errorf("expected 1 live handle, got %d", mgr.Live())
	}
}
