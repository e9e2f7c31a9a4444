// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

// SimilarityIndex bundles everything derived from one corpus: vectors,
// similarity matrix and title resolver. It is immutable and safe for
// concurrent use.
type SimilarityIndex struct {
	corpus   *catalog.Corpus
	model    *algorithms.TFIDFModel
	matrix   *algorithms.SimilarityMatrix
	resolver *titlematch.Resolver

	builtAt       time.Time
	buildDuration time.Duration
}

// BuildIndex vectorizes corpus, computes its similarity matrix and indexes
// its titles. A nil cfg selects DefaultConfig.
func BuildIndex(ctx context.Context, corpus *catalog.Corpus, cfg *Config) (*SimilarityIndex, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	start := time.Now()

	if corpus.Len() > cfg.Similarity.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries need %d bytes, limit is %d entries",
			ErrCorpusTooLarge, corpus.Len(), algorithms.MatrixBytes(corpus.Len()), cfg.Similarity.MaxEntries)
	}

	model, err := algorithms.NewTFIDFVectorizer(cfg.Vectorizer).Build(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("vectorize corpus: %w", err)
	}

	matrix, err := algorithms.ComputeCosineMatrix(ctx, model.Vectors, cfg.Similarity.Workers)
	if err != nil {
		return nil, fmt.Errorf("compute similarity matrix: %w", err)
	}

	return &SimilarityIndex{
		corpus:        corpus,
		model:         model,
		matrix:        matrix,
		resolver:      titlematch.NewResolver(corpus.Titles(), cfg.Matching),
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
	}, nil
}

// Corpus returns the indexed corpus.
func (x *SimilarityIndex) Corpus() *catalog.Corpus {
	return x.corpus
}

// Len returns the number of indexed entries.
func (x *SimilarityIndex) Len() int {
	return x.corpus.Len()
}

// Vocabulary returns the TF-IDF vocabulary.
func (x *SimilarityIndex) Vocabulary() *algorithms.Vocabulary {
	return x.model.Vocabulary
}

// Vector returns the feature vector of entry id.
func (x *SimilarityIndex) Vector(id int) (algorithms.SparseVector, bool) {
	if id < 0 || id >= len(x.model.Vectors) {
		return algorithms.SparseVector{}, false
	}
	return x.model.Vectors[id], true
}

// Matrix returns the similarity matrix. It must not be modified.
func (x *SimilarityIndex) Matrix() *algorithms.SimilarityMatrix {
	return x.matrix
}

// Fingerprint identifies the corpus the index was built from.
func (x *SimilarityIndex) Fingerprint() uint64 {
	return x.corpus.Fingerprint()
}

// BuiltAt returns when the build finished.
func (x *SimilarityIndex) BuiltAt() time.Time {
	return x.builtAt
}

// Resolve finds the closest catalog title for query.
func (x *SimilarityIndex) Resolve(query string) (titlematch.Match, bool) {
	return x.resolver.Resolve(query)
}

// Suggest returns up to n close titles for query, best first.
func (x *SimilarityIndex) Suggest(query string, n int) []titlematch.Match {
	return x.resolver.Suggest(query, n)
}

// Rank returns the topN entries most similar to id.
func (x *SimilarityIndex) Rank(id, topN int) ([]RankedItem, error) {
	return algorithms.Rank(x.matrix, x.corpus, id, topN)
}

// Recommend resolves query and ranks the entries most similar to the match.
// An unresolved query yields a Recommendation with a nil Match and no error.
func (x *SimilarityIndex) Recommend(query string, topN int) (Recommendation, error) {
	rec := Recommendation{Query: query, Items: []RankedItem{}}

	match, ok := x.Resolve(query)
	if !ok {
		return rec, nil
	}
	rec.Match = &match

	items, err := x.Rank(match.ID, topN)
	if err != nil {
		return rec, fmt.Errorf("rank %q: %w", match.Title, err)
	}
	rec.Items = items
	return rec, nil
}

// Stats describes the index.
func (x *SimilarityIndex) Stats() IndexStats {
	return IndexStats{
		Entries:        x.corpus.Len(),
		VocabularySize: x.model.Vocabulary.Size(),
		ZeroVectors:    x.model.ZeroVectors,
		MatrixBytes:    x.matrix.Bytes(),
		Fingerprint:    x.corpus.FingerprintHex(),
		BuiltAt:        x.builtAt,
		BuildDuration:  x.buildDuration,
	}
}
