package arena

import (
	"bytes"
	"testing"
)

func TestWriteValueTape(t *testing.T) {
	a := New()

	t.Run("round trip present and missing", func(t *testing.T) {
		tape := a.WriteValueTape([][]byte{[]byte("a"), []byte("bb"), nil})

		if tape.Lengths[0] != 1 || tape.Lengths[1] != 2 || tape.Lengths[2] != MissingLength {
			t.Fatalf("unexpected lengths: %v", tape.Lengths)
		}

		v0, ok0 := tape.Slice(0)
		if !ok0 || string(v0) != "a" {
			t.Fatalf("slice 0 = %q, %v", v0, ok0)
		}
		v1, ok1 := tape.Slice(1)
		if !ok1 || string(v1) != "bb" {
			t.Fatalf("slice 1 = %q, %v", v1, ok1)
		}
		if _, ok2 := tape.Slice(2); ok2 {
			t.Fatalf("slice 2 should be missing")
		}
	})

	t.Run("empty value distinct from missing", func(t *testing.T) {
		a.Reset()
		tape := a.WriteValueTape([][]byte{{}, nil})
		if tape.Lengths[0] != 0 {
			t.Fatalf("empty value should have length 0, got %d", tape.Lengths[0])
		}
		if tape.Lengths[1] != MissingLength {
			t.Fatalf("nil value should be missing")
		}
	})

	t.Run("reuse bounds high water mark", func(t *testing.T) {
		a.Reset()
		a.WriteValueTape([][]byte{bytes.Repeat([]byte{1}, 1000)})
		bigCap := a.Cap()
		a.Reset()
		a.WriteValueTape([][]byte{[]byte("x")})
		if a.Cap() > bigCap {
			t.Fatalf("arena grew on reuse: %d > %d", a.Cap(), bigCap)
		}
	})
}

func TestNameTape(t *testing.T) {
	a := New()
	buf := a.NameTape([]string{"users", "orders"})
	want := "users\x00orders\x00"
	if string(buf) != want {
		t.Fatalf("got %q want %q", buf, want)
	}
}
