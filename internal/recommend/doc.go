// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements content-based movie recommendations.
//
// # Architecture
//
// A SimilarityIndex is built once per corpus and holds every derived
// structure:
//
//   - TF-IDF vectors over the concatenated text fields (algorithms package)
//   - A dense cosine similarity matrix (algorithms package)
//   - A title resolver using the gestalt sequence-matching ratio (titlematch package)
//
// A query is resolved to the closest title, then the matched entry's matrix
// row is ranked. A query that matches nothing is a normal result, not an
// error.
//
// # Design Principles
//
//   - Deterministic: identical corpora yield bit-identical indexes
//   - Explicit state: the index is a value passed to queries, there is no
//     package-level cache
//   - Observable: builds and queries are logged and recorded in Prometheus
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.Rebuild(ctx, corpus); err != nil {
//	    return err
//	}
//
//	rec, err := engine.Recommend(ctx, "dark knight", 10)
//	if err != nil {
//	    return err
//	}
//	if !rec.Matched() {
//	    // render "try another title"
//	}
//
// # Thread Safety
//
// The Engine holds the active index behind an atomic pointer. Rebuild
// constructs a complete new index before swapping it in, so concurrent
// queries see either the old or the new index, never a partial one. A batch
// run loads the pointer once and uses that snapshot for every input.
//
// # Scaling
//
// The similarity matrix needs 8·N² bytes. Similarity.MaxEntries (default
// 20000, about 3.2 GB) makes larger corpora fail with ErrCorpusTooLarge.
package recommend
