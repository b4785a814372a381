// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package health

import (
	"context"
	"sync"
	"time"
)

// Metrics exposes the current health state of a graph store for monitoring
// and operator visibility. All fields are point-in-time snapshots safe
// to serialize to JSON.
type Metrics struct {
	Backend       string     `json:"backend"`
	Available     bool       `json:"available"`
	CheckedAt     time.Time  `json:"checked_at"`
	FailureCount  int64      `json:"failure_count"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
}

// Pinger is the part of a store a health check needs.
type Pinger interface {
	IsConnected(ctx context.Context) bool
	Backend() string
}

// Tracker remembers failed checks across calls. The zero value is ready
// to use.
type Tracker struct {
	mu           sync.Mutex
	failureCount int64
	lastFailure  *time.Time

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Check pings p and folds the result into the tracked history.
func (t *Tracker) Check(ctx context.Context, p Pinger) Metrics {
	ok := p.IsConnected(ctx)
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !ok {
		t.failureCount++
		at := now
		t.lastFailure = &at
	}

	m := Metrics{
		Backend:      p.Backend(),
		Available:    ok,
		CheckedAt:    now,
		FailureCount: t.failureCount,
	}
	if t.lastFailure != nil {
		at := *t.lastFailure
		m.LastFailureAt = &at
	}
	return m
}
