package assets

import (
	"errors"
	"sync"
)

// ErrNotReady is returned by Future.Err while the value is still loading.
var ErrNotReady = errors.New("asset not ready")

type futureState int

const (
	statePending futureState = iota
	stateReady
	stateFailed
)

// Future holds a value that becomes available later. The first Resolve or
// Fail wins; later calls are ignored.
type Future[T any] struct {
	mu      sync.Mutex
	state   futureState
	value   T
	err     error
	waiters []func(T)
	failed  []func(error)
}

// NewFuture returns a pending future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{}
}

// Ready returns a future already resolved with v.
func Ready[T any](v T) *Future[T] {
	return &Future[T]{state: stateReady, value: v}
}

// Resolve stores v and runs the OnReady callbacks.
func (f *Future[T]) Resolve(v T) {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return
	}
	f.state = stateReady
	f.value = v
	waiters := f.waiters
	f.waiters = nil
	f.failed = nil
	f.mu.Unlock()

	for _, fn := range waiters {
		fn(v)
	}
}

// Fail marks the future failed and runs the OnFail callbacks. OnReady
// callbacks are dropped.
func (f *Future[T]) Fail(err error) {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return
	}
	f.state = stateFailed
	f.err = err
	failed := f.failed
	f.waiters = nil
	f.failed = nil
	f.mu.Unlock()

	for _, fn := range failed {
		fn(err)
	}
}

// Get returns the value and whether it is available.
func (f *Future[T]) Get() (T, bool) {
	if f == nil {
		var zero T
		return zero, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.state == stateReady
}

// Err returns ErrNotReady while pending, the failure once failed and nil
// once resolved.
func (f *Future[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case statePending:
		return ErrNotReady
	case stateFailed:
		return f.err
	}
	return nil
}

// Done reports whether the future is resolved or failed.
func (f *Future[T]) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != statePending
}

// OnReady runs fn with the value once it is available. If the future is
// already resolved fn runs immediately. fn never runs for a failed future.
func (f *Future[T]) OnReady(fn func(T)) {
	f.mu.Lock()
	switch f.state {
	case statePending:
		f.waiters = append(f.waiters, fn)
		f.mu.Unlock()
	case stateReady:
		v := f.value
		f.mu.Unlock()
		fn(v)
	default:
		f.mu.Unlock()
	}
}

// OnFail runs fn with the failure once the future fails, immediately if it
// already has.
func (f *Future[T]) OnFail(fn func(error)) {
	f.mu.Lock()
	switch f.state {
	case statePending:
		f.failed = append(f.failed, fn)
		f.mu.Unlock()
	case stateFailed:
		err := f.err
		f.mu.Unlock()
		fn(err)
	default:
		f.mu.Unlock()
	}
}

// Map returns a future resolved with fn applied to src's value. An error
// from fn fails the result.
func Map[T, U any](src *Future[T], fn func(T) (U, error)) *Future[U] {
	dst := NewFuture[U]()
	src.OnFail(dst.Fail)
	src.OnReady(func(v T) {
		u, err := fn(v)
		if err != nil {
			dst.Fail(err)
			return
		}
		dst.Resolve(u)
	})
	return dst
}
