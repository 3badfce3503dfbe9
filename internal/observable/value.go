// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package observable

import "sync"

// Value holds the latest value of T and notifies subscribers on Set.
type Value[T any] struct {
	Emitter[T]

	mu    sync.RWMutex
	value T
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores value and publishes it.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.mu.Unlock()

	v.Publish(value)
}
