// Package ratelimit implements fixed-window request counting per identifier.
//
// A window opens on the first request for an identifier and lasts for the
// window duration; every request inside it counts against the limit. Bursts
// of up to twice the limit across a window boundary are accepted.
package ratelimit

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrInvalidLimit = errors.New("ratelimit: limit and window must be positive")

// Limiter performs an atomic check-and-increment for one identifier.
type Limiter interface {
	Check(ctx context.Context, identifier string, limit int, window time.Duration) (Result, error)
}

// Result is the outcome of one Check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until the window resets; set only when denied.
	RetryAfter int
}

// Class is a named budget. Classes never share counters.
type Class struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Key namespaces identifier under the class name.
func (c Class) Key(identifier string) string {
	return c.Name + ":" + identifier
}

// CheckClass checks identifier against class c.
func CheckClass(ctx context.Context, l Limiter, c Class, identifier string) (Result, error) {
	return l.Check(ctx, c.Key(identifier), c.Limit, c.Window)
}

func retryAfterSeconds(resetAt, now time.Time) int {
	d := resetAt.Sub(now)
	if d <= 0 {
		return 1
	}
	return int(math.Ceil(float64(d) / float64(time.Second)))
}

func validate(limit int, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
