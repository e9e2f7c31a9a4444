// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Corpus is the read-only view of a catalog the vectorizer needs.
type Corpus interface {
	Len() int
	Entry(id int) (catalog.Entry, bool)
	HasField(name string) bool
}

// TFIDFConfig contains parameters for TF-IDF vectorization.
type TFIDFConfig struct {
	// Fields lists the entry fields concatenated into each document, in order.
	// Default: genres, keywords, tagline, cast, director.
	Fields []string `json:"fields"`

	// RequiredFields must each be present on at least one entry.
	// When empty, at least one of Fields must be present somewhere.
	// Default: empty.
	RequiredFields []string `json:"required_fields"`

	// MinTokenLength is the minimum token length in runes.
	// Default: 2.
	MinTokenLength int `json:"min_token_length"`
}

// DefaultTFIDFConfig returns the default vectorizer configuration.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		Fields:         catalog.DefaultFields(),
		RequiredFields: nil,
		MinTokenLength: DefaultMinTokenLength,
	}
}

// Vocabulary maps terms to column indices. Columns are assigned in
// lexicographic term order, so identical input always yields an identical
// vocabulary.
type Vocabulary struct {
	terms []string
	index map[string]int
	df    []int
	idf   []float64
}

// Size returns the number of distinct terms.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Term returns the term at column i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Lookup returns the column of term.
func (v *Vocabulary) Lookup(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// DocumentFrequency returns the number of documents containing the term at column i.
func (v *Vocabulary) DocumentFrequency(i int) int {
	return v.df[i]
}

// IDF returns the smoothed inverse document frequency of column i.
func (v *Vocabulary) IDF(i int) float64 {
	return v.idf[i]
}

// TermStat summarizes one vocabulary column.
type TermStat struct {
	Term              string  `json:"term"`
	DocumentFrequency int     `json:"document_frequency"`
	IDF               float64 `json:"idf"`
}

// MostFrequent returns the k terms with the highest document frequency,
// ties broken by term order.
func (v *Vocabulary) MostFrequent(k int) []TermStat {
	cols := make([]int, len(v.terms))
	for i := range cols {
		cols[i] = i
	}
	sort.SliceStable(cols, func(a, b int) bool {
		return v.df[cols[a]] > v.df[cols[b]]
	})
	if k > len(cols) {
		k = len(cols)
	}
	if k < 0 {
		k = 0
	}

	stats := make([]TermStat, k)
	for i := 0; i < k; i++ {
		c := cols[i]
		stats[i] = TermStat{Term: v.terms[c], DocumentFrequency: v.df[c], IDF: v.idf[c]}
	}
	return stats
}

// TFIDFModel is the output of a vectorizer build.
type TFIDFModel struct {
	// Vocabulary is shared by all vectors.
	Vocabulary *Vocabulary

	// Vectors holds one L2-normalized vector per entry, indexed by entry ID.
	Vectors []SparseVector

	// ZeroVectors counts entries with no tokens.
	ZeroVectors int
}

// TFIDFVectorizer builds TF-IDF vectors from a corpus.
//
// Weights are raw term counts times a smoothed IDF:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// where N is the number of entries and df(t) the number of entries whose
// combined text contains t. Each vector is then scaled to unit L2 norm.
// Entries without tokens get the zero vector.
type TFIDFVectorizer struct {
	config    TFIDFConfig
	tokenizer Tokenizer
}

// NewTFIDFVectorizer creates a vectorizer. Empty Fields select the defaults.
//
//nolint:gocritic // hugeParam: config copied once at construction
func NewTFIDFVectorizer(config TFIDFConfig) *TFIDFVectorizer {
	if len(config.Fields) == 0 {
		config.Fields = catalog.DefaultFields()
	}
	config.Fields = append([]string(nil), config.Fields...)
	config.RequiredFields = append([]string(nil), config.RequiredFields...)

	return &TFIDFVectorizer{
		config:    config,
		tokenizer: NewTokenizer(config.MinTokenLength),
	}
}

// Config returns the vectorizer configuration.
func (v *TFIDFVectorizer) Config() TFIDFConfig {
	return v.config
}

// Build vectorizes every entry of corpus. It returns catalog.ErrEmptyCorpus
// for an empty corpus and a *catalog.SchemaError when the text fields are
// absent from every entry. The corpus is not modified.
func (v *TFIDFVectorizer) Build(ctx context.Context, corpus Corpus) (*TFIDFModel, error) {
	n := corpus.Len()
	if n == 0 {
		return nil, catalog.ErrEmptyCorpus
	}
	if err := v.checkSchema(corpus); err != nil {
		return nil, err
	}

	// Term counts per document and document frequency per term.
	counts := make([]map[string]int, n)
	df := make(map[string]int)
	for id := 0; id < n; id++ {
		if id%256 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		entry, _ := corpus.Entry(id)
		tokens := v.tokenizer.Tokenize(entry.CombinedText(v.config.Fields))

		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[id] = tf
	}

	vocab := buildVocabulary(df, n)

	model := &TFIDFModel{
		Vocabulary: vocab,
		Vectors:    make([]SparseVector, n),
	}
	for id, tf := range counts {
		model.Vectors[id] = weighDocument(tf, vocab)
		if model.Vectors[id].NNZ() == 0 {
			model.ZeroVectors++
		}
	}

	return model, nil
}

// checkSchema distinguishes fields that are empty from fields that no entry carries.
func (v *TFIDFVectorizer) checkSchema(corpus Corpus) error {
	for _, name := range v.config.RequiredFields {
		if !corpus.HasField(name) {
			return &catalog.SchemaError{Column: name, Reason: "required field is absent from every entry"}
		}
	}

	for _, name := range v.config.Fields {
		if corpus.HasField(name) {
			return nil
		}
	}
	return &catalog.SchemaError{
		Column: strings.Join(v.config.Fields, ","),
		Reason: "no text field is present on any entry",
	}
}

func buildVocabulary(df map[string]int, documents int) *Vocabulary {
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := &Vocabulary{
		terms: terms,
		index: make(map[string]int, len(terms)),
		df:    make([]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(documents)
	for i, term := range terms {
		vocab.index[term] = i
		vocab.df[i] = df[term]
		vocab.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vocab
}

// weighDocument converts term counts into an L2-normalized sparse vector.
func weighDocument(tf map[string]int, vocab *Vocabulary) SparseVector {
	if len(tf) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(tf))
	for term := range tf {
		indices = append(indices, vocab.index[term])
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = float64(tf[vocab.Term(idx)]) * vocab.IDF(idx)
	}

	vec := SparseVector{Indices: indices, Values: values}
	if norm := vec.Norm(); norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
