// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "errors"

var (
	// ErrCorpusTooLarge is returned when a corpus exceeds Similarity.MaxEntries.
	ErrCorpusTooLarge = errors.New("corpus too large for similarity matrix")

	// ErrIndexNotBuilt is returned by queries issued before the first build.
	ErrIndexNotBuilt = errors.New("similarity index not built")

	// ErrInvalidTopN is returned for a negative recommendation count.
	ErrInvalidTopN = errors.New("top_n must be non-negative")
)
