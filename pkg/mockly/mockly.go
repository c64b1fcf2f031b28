// Package mockly is the Go side of the contract the generated C# mocks
// follow: every call is counted per argument tuple before dispatch, and an
// optional behavior decides the result.
//
// A method taking arguments (a, b) uses a comparable key such as
//
//	type lookupArgs struct{ key string; id int }
//
// and a void method uses struct{} as its result type.
package mockly

import (
	"fmt"
	"sync"
)

// CallRecord counts calls per argument key. The zero value is ready to use
// and safe for concurrent use.
type CallRecord[K comparable] struct {
	mu     sync.Mutex
	counts map[K]int
	total  int
}

// Record counts one call with key
func (r *CallRecord[K]) Record(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[K]int)
	}
	r.counts[key]++
	r.total++
}

// CountOf returns how many calls were recorded with key, 0 if none
func (r *CallRecord[K]) CountOf(key K) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

// Total returns the number of calls across all keys
func (r *CallRecord[K]) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Reset forgets every recorded call
func (r *CallRecord[K]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = nil
	r.total = 0
}

// BehaviorNotSetError is the panic value of a strict Method called before
// Returns
type BehaviorNotSetError struct {
	Method string
}

func (e *BehaviorNotSetError) Error() string {
	return fmt.Sprintf("mockly: behavior for %s is not set; call Returns before calling it", e.Method)
}

// Option configures a Method
type Option func(*methodOptions)

type methodOptions struct {
	strict bool
}

// Strict makes calls without a behavior panic instead of returning the zero value
func Strict() Option {
	return func(o *methodOptions) { o.strict = true }
}

// Method is one mocked method: a call record plus a replaceable behavior
type Method[K comparable, R any] struct {
	name  string
	opts  methodOptions
	calls CallRecord[K]

	mu       sync.RWMutex
	behavior func(K) R
}

// NewMethod creates a mocked method; name appears in panics
func NewMethod[K comparable, R any](name string, opts ...Option) *Method[K, R] {
	m := &Method[K, R]{name: name}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// Returns sets the behavior used by later calls; nil clears it
func (m *Method[K, R]) Returns(behavior func(K) R) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behavior = behavior
}

// Call records the call, then runs the behavior. Without one it returns
// the zero value of R, or panics with *BehaviorNotSetError when strict.
// The call is counted even when it panics.
func (m *Method[K, R]) Call(key K) R {
	m.calls.Record(key)

	m.mu.RLock()
	behavior := m.behavior
	m.mu.RUnlock()

	if behavior == nil {
		if m.opts.strict {
			panic(&BehaviorNotSetError{Method: m.name})
		}
		var zero R
		return zero
	}
	return behavior(key)
}

// CountOf returns how many calls were made with key
func (m *Method[K, R]) CountOf(key K) int {
	return m.calls.CountOf(key)
}

// Calls exposes the underlying record
func (m *Method[K, R]) Calls() *CallRecord[K] {
	return &m.calls
}
