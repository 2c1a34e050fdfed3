package task

import (
	"fmt"
	"unsafe"
)

// Cursor decodes element i of a strided argument vector as
// base + i*stride, per the C ABI this engine's facade preserves. A stride
// of zero broadcasts the single element at base to every task. A nil base
// means the argument was entirely absent.
type Cursor[T any] struct {
	base   unsafe.Pointer
	stride int
	count  int
}

// FromSlice builds a cursor over a dense Go slice, one element per task.
func FromSlice[T any](s []T) Cursor[T] {
	if len(s) == 0 {
		return Cursor[T]{count: 0}
	}
	var zero T
	return Cursor[T]{
		base:   unsafe.Pointer(&s[0]),
		stride: int(unsafe.Sizeof(zero)),
		count:  len(s),
	}
}

// Broadcast builds a cursor that returns *v for every one of count tasks.
func Broadcast[T any](v *T, count int) Cursor[T] {
	if v == nil {
		return Cursor[T]{count: count}
	}
	return Cursor[T]{base: unsafe.Pointer(v), stride: 0, count: count}
}

// Absent builds a cursor with no backing base, for an optional argument
// the caller did not supply.
func Absent[T any](count int) Cursor[T] {
	return Cursor[T]{count: count}
}

// IsAbsent reports whether the cursor has no backing base.
func (c Cursor[T]) IsAbsent() bool {
	return c.base == nil
}

// Len reports the task count this cursor was built for.
func (c Cursor[T]) Len() int {
	return c.count
}

// At decodes the logical value for task i. Absent cursors yield the zero
// value of T.
func (c Cursor[T]) At(i int) T {
	var zero T
	if c.base == nil {
		return zero
	}
	if c.stride == 0 {
		return *(*T)(c.base)
	}
	return *(*T)(unsafe.Pointer(uintptr(c.base) + uintptr(i)*uintptr(c.stride)))
}

// RequireNonBroadcast rejects a zero stride on a required argument such as
// keys, per the usage-error rule for non-broadcastable arguments. A
// single-task call (count <= 1) is exempt since stride is meaningless
// there.
func (c Cursor[T]) RequireNonBroadcast(argName string) error {
	if c.count > 1 && c.stride == 0 && c.base != nil {
		return fmt.Errorf("%s: zero stride is not permitted on this argument", argName)
	}
	return nil
}
