// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package store

import (
	"fmt"
	"sync/atomic"
	"time"
)

// QueryStats counts statements run through a store. Safe for concurrent use.
type QueryStats struct {
	TotalQueries  atomic.Int64
	TotalExecs    atomic.Int64
	TotalDuration atomic.Int64 // nanoseconds
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Record accounts for one statement.
func (s *QueryStats) Record(isQuery bool, d time.Duration, slow bool, err error) {
	if isQuery {
		s.TotalQueries.Add(1)
	} else {
		s.TotalExecs.Add(1)
	}
	s.TotalDuration.Add(int64(d))
	if slow {
		s.SlowQueries.Add(1)
	}
	if err != nil {
		s.Errors.Add(1)
	}
}

// Snapshot returns the current values.
func (s *QueryStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64         `json:"total_queries"`
	TotalExecs    int64         `json:"total_execs"`
	TotalDuration time.Duration `json:"total_duration_ns"`
	SlowQueries   int64         `json:"slow_queries"`
	Errors        int64         `json:"errors"`
}

// AvgDuration is the mean time per statement.
func (s StatsSnapshot) AvgDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(),
		s.SlowQueries, s.Errors,
	)
}
