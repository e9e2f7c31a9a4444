// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMinTokenLength drops single-rune tokens such as stray initials.
const DefaultMinTokenLength = 2

// Tokenizer splits free text into lowercase terms.
//
// The rule, applied in order:
//
//  1. Normalize to Unicode NFKC, so compatibility forms ("ﬁ", full-width
//     digits) and composed/decomposed accents tokenize identically.
//  2. Lowercase each rune with unicode.ToLower.
//  3. A token is a maximal run of runes for which unicode.IsLetter or
//     unicode.IsDigit is true. Every other rune, including '_', '-', '\''
//     and whitespace, is a separator.
//  4. Tokens shorter than MinLength runes are discarded.
//
// "Sci-Fi", "sci fi" and "SCI_FI" all yield [sci fi].
type Tokenizer struct {
	// MinLength is the minimum token length in runes.
	// Default: 2.
	MinLength int
}

// NewTokenizer returns a tokenizer with the given minimum token length.
// Values below 1 select DefaultMinTokenLength.
func NewTokenizer(minLength int) Tokenizer {
	if minLength < 1 {
		minLength = DefaultMinTokenLength
	}
	return Tokenizer{MinLength: minLength}
}

// Tokenize returns the tokens of text in order of appearance.
func (t Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	minLength := t.MinLength
	if minLength < 1 {
		minLength = DefaultMinTokenLength
	}

	normalized := strings.Map(unicode.ToLower, norm.NFKC.String(text))
	words := strings.FieldsFunc(normalized, isSeparator)

	tokens := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
