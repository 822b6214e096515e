package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"calendar-assistant/pkg/log"

	"github.com/robfig/cron/v3"
)

type record struct {
	count   int
	resetAt time.Time
}

// Memory is the single-instance Limiter. One mutex guards every record; the
// sweeper takes the same lock.
type Memory struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
	l       log.Logger

	cronMu sync.Mutex
	cron   *cron.Cron
}

// MemoryOption configures a Memory limiter.
type MemoryOption func(*Memory)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithLogger reports sweep results.
func WithLogger(l log.Logger) MemoryOption {
	return func(m *Memory) { m.l = l }
}

// NewMemory creates an empty in-process limiter.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		records: make(map[string]*record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Check(_ context.Context, identifier string, limit int, window time.Duration) (Result, error) {
	if err := validate(limit, window); err != nil {
		return Result{}, err
	}

	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[identifier]
	if !ok || !now.Before(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(window)}
		m.records[identifier] = rec
		return Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: rec.resetAt}, nil
	}

	if rec.count >= limit {
		return Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    rec.resetAt,
			RetryAfter: retryAfterSeconds(rec.resetAt, now),
		}, nil
	}

	rec.count++
	return Result{Allowed: true, Limit: limit, Remaining: limit - rec.count, ResetAt: rec.resetAt}, nil
}

// Sweep drops every expired record and returns how many were removed.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, rec := range m.records {
		if !now.Before(rec.resetAt) {
			delete(m.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked identifiers, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Start schedules Sweep every interval. Calling Start twice is a no-op.
func (m *Memory) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("ratelimit.Memory.Start: interval must be positive, got %s", interval)
	}

	m.cronMu.Lock()
	defer m.cronMu.Unlock()
	if m.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), m.sweepJob); err != nil {
		return fmt.Errorf("ratelimit.Memory.Start: %w", err)
	}
	c.Start()
	m.cron = c
	return nil
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (m *Memory) Stop() {
	m.cronMu.Lock()
	c := m.cron
	m.cron = nil
	m.cronMu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

func (m *Memory) sweepJob() {
	removed := m.Sweep()
	if m.l != nil && removed > 0 {
		m.l.Debugf(context.Background(), "ratelimit.Memory.sweep: removed %d expired windows", removed)
	}
}
