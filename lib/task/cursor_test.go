package task

import "testing"

func TestCursorFromSlice(t *testing.T) {
	keys := []int64{10, 20, 30}
	c := FromSlice(keys)

	for i, want := range keys {
		if got := c.At(i); got != want {
			t.Fatalf("At(%d) = %d, want %d", i, got, want)
		}
	}
	if err := c.RequireNonBroadcast("keys"); err != nil {
		t.Fatalf("dense cursor should not fail broadcast check: %v", err)
	}
}

func TestCursorBroadcast(t *testing.T) {
	v := int64(7)
	c := Broadcast(&v, 5)

	for i := 0; i < 5; i++ {
		if got := c.At(i); got != 7 {
			t.Fatalf("At(%d) = %d, want 7", i, got)
		}
	}

	if err := c.RequireNonBroadcast("keys"); err == nil {
		t.Fatalf("broadcast cursor on required arg should be a usage error")
	}
}

func TestCursorAbsent(t *testing.T) {
	c := Absent[[]byte](3)
	if !c.IsAbsent() {
		t.Fatalf("expected absent cursor")
	}
	if got := c.At(0); got != nil {
		t.Fatalf("absent cursor should yield zero value, got %v", got)
	}
}

func TestCursorSingleTaskExemptFromBroadcastCheck(t *testing.T) {
	v := int64(1)
	c := Broadcast(&v, 1)
	if err := c.RequireNonBroadcast("keys"); err != nil {
		t.Fatalf("single-task call should not require non-broadcast: %v", err)
	}
}
