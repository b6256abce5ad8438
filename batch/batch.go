// Package batch drives grouped concurrent execution with inter-group pacing.
//
// Work items are partitioned into consecutive fixed-size groups. Items
// inside a group run concurrently and the group completes as a barrier;
// groups run one after another with an optional pause between them, which
// is how upstream rate limits are respected.
//
// Information Hiding:
// - Goroutine fan-out and barrier synchronization hidden
// - Pacing and cancellation handling internalized
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config controls grouping and pacing.
type Config struct {
	// Size is the number of items run concurrently per group.
	// Values < 1 are treated as 1.
	Size int
	// Delay is the pause between consecutive groups. Zero means no pause.
	// No pause follows the final group.
	Delay time.Duration
}

// Op is the per-item operation. index is the item's position in the input
// sequence.
type Op[T, R any] func(ctx context.Context, item T, index int) (R, error)

// GroupCount returns ceil(n/size); size < 1 is treated as 1.
func GroupCount(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Chunk partitions items into consecutive groups of at most size elements.
// The last group may be shorter. size < 1 is treated as 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	if len(items) == 0 {
		return nil
	}
	groups := make([][]T, 0, GroupCount(len(items), size))
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		groups = append(groups, items[start:end])
	}
	return groups
}

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sleepBetween paces consecutive groups; replaced in tests.
var sleepBetween = Sleep

// Process runs op over items in groups of cfg.Size.
//
// All items in a group are issued concurrently and the group acts as a
// barrier: nothing beyond it starts until every item resolves. If any item
// fails, the lowest-index error is returned once the group's in-flight
// work finishes; later groups never start and no partial results are
// returned. Output order always matches input order. Zero items yield an
// empty, non-nil result with no pauses.
func Process[T, R any](ctx context.Context, items []T, cfg Config, op Op[T, R]) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	groups := Chunk(items, cfg.Size)
	offset := 0
	for gi, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		errs := make([]error, len(group))
		var wg sync.WaitGroup
		for i, item := range group {
			wg.Add(1)
			go func(i int, item T) {
				defer wg.Done()
				out, err := op(ctx, item, offset+i)
				if err != nil {
					errs[i] = err
					return
				}
				results[offset+i] = out
			}(i, item)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("batch item %d: %w", offset+i, err)
			}
		}

		offset += len(group)

		if gi < len(groups)-1 && cfg.Delay > 0 {
			if err := sleepBetween(ctx, cfg.Delay); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}
