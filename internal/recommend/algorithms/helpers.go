// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"runtime"
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// EffectiveWorkers resolves a configured worker count against the amount of
// work. Zero selects runtime.NumCPU(); the result is always in [1, max(1, jobs)].
func EffectiveWorkers(configured, jobs int) int {
	workers := configured
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
