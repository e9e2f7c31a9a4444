// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package titlematch

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultMinRatio rejects weak matches. 0.6 is the classic close-match cutoff.
const DefaultMinRatio = 0.6

// Options configures a Resolver.
type Options struct {
	// MinRatio is the smallest ratio accepted as a match, in [0, 1].
	// Default: 0.6.
	MinRatio float64 `json:"min_ratio"`

	// CaseSensitive compares titles exactly as written. When false both
	// sides are Unicode case-folded first.
	// Default: false.
	CaseSensitive bool `json:"case_sensitive"`
}

// DefaultOptions returns the standard resolver options.
func DefaultOptions() Options {
	return Options{MinRatio: DefaultMinRatio}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MinRatio < 0 || o.MinRatio > 1 {
		return fmt.Errorf("min_ratio must be between 0 and 1, got %f", o.MinRatio)
	}
	return nil
}

// Match is a resolved title.
type Match struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Ratio float64 `json:"ratio"`
}

// Resolver finds the catalog title closest to free-text input.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	titles []string
	keys   [][]rune
	opts   Options
}

// NewResolver indexes titles in id order. Titles are folded once here so
// queries only fold the query itself.
func NewResolver(titles []string, opts Options) *Resolver {
	r := &Resolver{
		titles: append([]string(nil), titles...),
		keys:   make([][]rune, len(titles)),
		opts:   opts,
	}

	caser := cases.Fold()
	for i, t := range r.titles {
		r.keys[i] = []rune(r.normalize(caser, t))
	}
	return r
}

// Len returns the number of indexed titles.
func (r *Resolver) Len() int {
	return len(r.titles)
}

// Options returns the resolver options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Resolve returns the best-matching title for query and true, or false when
// the corpus is empty or no title reaches MinRatio. Equal ratios resolve to
// the lowest id. Surrounding whitespace in query is ignored.
func (r *Resolver) Resolve(query string) (Match, bool) {
	q, ok := r.prepare(query)
	if !ok {
		return Match{}, false
	}

	m := NewMatcher(q, true)
	best := Match{ID: -1}
	for id, key := range r.keys {
		// A candidate must strictly beat the current best. Upper bounds
		// below that (or below MinRatio) rule it out without a full match.
		floor := r.opts.MinRatio
		if best.ID >= 0 {
			floor = best.Ratio
		}
		if !r.mayQualify(m, key, floor, best.ID >= 0) {
			continue
		}

		score := m.Ratio(key)
		if score < r.opts.MinRatio {
			continue
		}
		if best.ID < 0 || score > best.Ratio {
			best = Match{ID: id, Title: r.titles[id], Ratio: score}
		}
	}

	if best.ID < 0 {
		return Match{}, false
	}
	return best, true
}

// Suggest returns up to n titles with a ratio of at least MinRatio, best
// first, equal ratios in id order.
func (r *Resolver) Suggest(query string, n int) []Match {
	if n <= 0 {
		return nil
	}
	q, ok := r.prepare(query)
	if !ok {
		return nil
	}

	m := NewMatcher(q, true)
	var out []Match
	for id, key := range r.keys {
		if !r.mayQualify(m, key, r.opts.MinRatio, false) {
			continue
		}
		if score := m.Ratio(key); score >= r.opts.MinRatio {
			out = append(out, Match{ID: id, Title: r.titles[id], Ratio: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio > out[j].Ratio
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// mayQualify applies the cheap upper bounds. With strict set a candidate
// must be able to exceed floor; otherwise reaching it is enough.
func (r *Resolver) mayQualify(m *Matcher, key []rune, floor float64, strict bool) bool {
	pass := func(bound float64) bool {
		if strict {
			return bound > floor
		}
		return bound >= floor
	}
	return pass(m.RealQuickRatio(key)) && pass(m.QuickRatio(key))
}

func (r *Resolver) prepare(query string) ([]rune, bool) {
	if len(r.keys) == 0 {
		return nil, false
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}
	return []rune(r.normalize(cases.Fold(), query)), true
}

func (r *Resolver) normalize(caser cases.Caser, s string) string {
	if r.opts.CaseSensitive {
		return s
	}
	return caser.String(s)
}
