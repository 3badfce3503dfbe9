// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package observable provides a small generic event emitter and an
// observable value built on top of it.
//
// Handlers are invoked in subscription order. A handler registered with
// [WithExecutor] is handed to that executor; any other handler runs
// synchronously on the publisher's goroutine.
package observable

import (
	"sync"
)

// Executor runs fn, possibly on another goroutine.
type Executor func(fn func())

// Option configures a subscription.
type Option func(*subscribeOptions)

type subscribeOptions struct {
	executor Executor
}

// WithExecutor dispatches the handler through exec.
func WithExecutor(exec Executor) Option {
	return func(o *subscribeOptions) {
		o.executor = exec
	}
}

// Subscription is returned by Subscribe and cancels the registration.
type Subscription interface {
	Unsubscribe()
}

type subscriber[T any] struct {
	id       uint64
	handler  func(T)
	executor Executor
}

// Emitter delivers published events to its subscribers.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber[T]
}

// Subscribe registers handler and returns a handle to unregister it.
func (e *Emitter[T]) Subscribe(handler func(T), opts ...Option) Subscription {
	var o subscribeOptions
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.subs = append(e.subs, subscriber[T]{id: e.nextID, handler: handler, executor: o.executor})
	return &subscription[T]{emitter: e, id: e.nextID}
}

// Publish delivers event to every current subscriber.
func (e *Emitter[T]) Publish(event T) {
	e.mu.RLock()
	subs := make([]subscriber[T], len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	for _, s := range subs {
		handler := s.handler
		if s.executor == nil {
			handler(event)
			continue
		}
		s.executor(func() { handler(event) })
	}
}

// Len returns the number of active subscriptions.
func (e *Emitter[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

func (e *Emitter[T]) unsubscribe(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

type subscription[T any] struct {
	emitter *Emitter[T]
	id      uint64
	once    sync.Once
}

func (s *subscription[T]) Unsubscribe() {
	s.once.Do(func() { s.emitter.unsubscribe(s.id) })
}
