// Package task implements the strided argument decoder: the single place
// that turns a (base pointer, byte stride) pair plus a task count into a
// per-task logical value. A stride of zero broadcasts one element to every
// task; downstream batch code never touches strides directly.
package task
