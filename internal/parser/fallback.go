package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"billscan/internal/port"
)

// circuitState tracks rate-limit backoff for a single extractor.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackExtractor tries extractors in order, skipping those with open
// circuits. Pages fan out concurrently, so the circuit state is shared
// across goroutines of a request and across requests.
// It implements port.PageExtractor.
type FallbackExtractor struct {
	extractors []port.PageExtractor
	circuits   []*circuitState
	names      []string
}

// NewFallbackExtractor creates a FallbackExtractor from an ordered list of
// extractors and their provider names.
func NewFallbackExtractor(extractors []port.PageExtractor, names []string) *FallbackExtractor {
	circuits := make([]*circuitState, len(extractors))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackExtractor{
		extractors: extractors,
		circuits:   circuits,
		names:      names,
	}
}

func (f *FallbackExtractor) Extract(ctx context.Context, input port.PageInput) (*port.PageOutput, error) {
	now := time.Now()
	var lastErr error
	var lastOut *port.PageOutput
	allRateLimited := true
	var earliestReset time.Time

	for i, e := range f.extractors {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("parser.FallbackExtractor: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := e.Extract(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("parser.FallbackExtractor: %s failed: %v", f.names[i], err)
		lastErr = err
		if out != nil {
			// Keep the usage-bearing output so spent tokens are still accounted.
			lastOut = out
		}

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All extractors were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all extraction providers rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return lastOut, NewRateLimitError("all", fmt.Errorf("all extraction providers rate limited"), int(retryAfter.Seconds()))
	}

	return lastOut, fmt.Errorf("all extraction providers failed: %w", lastErr)
}
