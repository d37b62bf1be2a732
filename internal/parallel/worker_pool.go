// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel distributes independent per-item work across a fixed
// pool of goroutines while preserving input order in the results.
package parallel

import (
	"context"
	"runtime"
	"sync"

	"insight-ops/internal/observability"
)

// WorkerPool fans work out over a bounded number of goroutines. Results
// come back indexed, so callers see them in submission order regardless
// of completion order.
type WorkerPool struct {
	workers  int
	observer *observability.StandardObserver
}

// NewWorkerPool creates a pool. workers <= 0 means one per CPU.
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{workers: workers, observer: observer}
}

// job carries one input item and its position.
type job struct {
	index int
	input string
}

// MapOrdered applies fn to every input and returns the outputs in input
// order. fn must be safe for concurrent use. The first context
// cancellation stops scheduling; already-running items finish.
func MapOrdered[T any](ctx context.Context, wp *WorkerPool, inputs []string, fn func(string) T) ([]T, error) {
	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "map_ordered", "")
	}

	out := make([]T, len(inputs))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out[j.index] = fn(j.input)
			}
		}()
	}

	var err error
feed:
	for i, input := range inputs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- job{index: i, input: input}:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if finishTiming != nil {
		finishTiming(err == nil, map[string]interface{}{
			"items":   len(inputs),
			"workers": wp.workers,
		})
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
