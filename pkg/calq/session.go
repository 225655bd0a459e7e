package calq

import "sync"

// InputField tracks the conversion lifecycle of one UI input so a burst of
// rapid edits results in exactly one applied conversion, and a stale async
// completion can never clobber a newer result. Each edit takes a new token;
// completions whose token is no longer current are discarded.
//
// It also remembers the last emitted compound value so semantically identical
// re-emits can be suppressed (free-text and discrete-field modes re-derive
// each other without feedback loops).
type InputField struct {
	mu    sync.Mutex
	token uint64
	last  *CompoundMeasurement
}

// Begin registers a new edit and returns its token.
func (f *InputField) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token++
	return f.token
}

// Current reports whether the token still corresponds to the latest edit.
// Completions holding a stale token must be dropped.
func (f *InputField) Current(token uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return token == f.token
}

// ShouldEmit records m as the field's value and reports whether it differs
// semantically from the previously emitted one. Comparison is by component
// list, not object identity.
func (f *InputField) ShouldEmit(m *CompoundMeasurement) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.Equal(f.last) {
		return false
	}
	f.last = m
	return true
}

// Reset clears the field's token and last value.
func (f *InputField) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token++
	f.last = nil
}
