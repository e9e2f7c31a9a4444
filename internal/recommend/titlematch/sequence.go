// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package titlematch

import (
	"cmp"
	"slices"
)

// autojunkMinLength is the length of b at which popular runes stop seeding
// matches. A rune is popular when it occurs more than len(b)/100+1 times.
const autojunkMinLength = 200

// Block is a run of equal runes: a[A:A+Size] == b[B:B+Size].
type Block struct {
	A, B, Size int
}

// Matcher compares candidate sequences against one fixed sequence b using
// the Ratcliff/Obershelp gestalt algorithm. The longest common contiguous run
// is found first, then the algorithm recurses on the pieces left and right
// of it. The similarity ratio is
//
//	2·M / (len(a) + len(b))
//
// where M is the total size of all matching blocks.
//
// b is preprocessed once, so a Matcher is cheap to reuse across many
// candidates. A Matcher is not safe for concurrent use.
type Matcher struct {
	b          []rune
	b2j        map[rune][]int
	fullBCount map[rune]int

	// scratch reused across findLongestMatch calls
	j2len    map[int]int
	newJ2len map[int]int
	avail    map[rune]int
}

// NewMatcher prepares b for comparison. When autojunk is set and b has at
// least 200 runes, popular runes are excluded from seeding matches; they can
// still extend a match found through other runes.
func NewMatcher(b []rune, autojunk bool) *Matcher {
	m := &Matcher{
		b:          b,
		b2j:        make(map[rune][]int),
		fullBCount: make(map[rune]int),
		j2len:      make(map[int]int),
		newJ2len:   make(map[int]int),
		avail:      make(map[rune]int),
	}

	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
		m.fullBCount[r]++
	}

	if n := len(b); autojunk && n >= autojunkMinLength {
		limit := n/100 + 1
		for r, idxs := range m.b2j {
			if len(idxs) > limit {
				delete(m.b2j, r)
			}
		}
	}
	return m
}

// Ratio returns the similarity of a and b in [0, 1]. Two empty sequences
// have ratio 1.
func (m *Matcher) Ratio(a []rune) float64 {
	matches := 0
	for _, blk := range m.MatchingBlocks(a) {
		matches += blk.Size
	}
	return ratio(matches, len(a)+len(m.b))
}

// QuickRatio returns an upper bound on Ratio from rune multiset overlap.
func (m *Matcher) QuickRatio(a []rune) float64 {
	clear(m.avail)
	matches := 0
	for _, r := range a {
		n, seen := m.avail[r]
		if !seen {
			n = m.fullBCount[r]
		}
		m.avail[r] = n - 1
		if n > 0 {
			matches++
		}
	}
	return ratio(matches, len(a)+len(m.b))
}

// RealQuickRatio returns an upper bound on Ratio from lengths alone.
func (m *Matcher) RealQuickRatio(a []rune) float64 {
	return ratio(min(len(a), len(m.b)), len(a)+len(m.b))
}

// MatchingBlocks returns the matching runs of a and b ordered by position.
// Adjacent runs are not merged; the total size is unaffected.
func (m *Matcher) MatchingBlocks(a []rune) []Block {
	type span struct{ alo, ahi, blo, bhi int }

	var blocks []Block
	queue := []span{{0, len(a), 0, len(m.b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		blk := m.findLongestMatch(a, s.alo, s.ahi, s.blo, s.bhi)
		if blk.Size == 0 {
			continue
		}
		blocks = append(blocks, blk)
		if s.alo < blk.A && s.blo < blk.B {
			queue = append(queue, span{s.alo, blk.A, s.blo, blk.B})
		}
		if blk.A+blk.Size < s.ahi && blk.B+blk.Size < s.bhi {
			queue = append(queue, span{blk.A + blk.Size, s.ahi, blk.B + blk.Size, s.bhi})
		}
	}

	slices.SortFunc(blocks, func(x, y Block) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return blocks
}

// findLongestMatch returns the longest run a[i:i+k] == b[j:j+k] inside the
// given window. Among maximal runs it returns the one starting earliest in a,
// and of those the one starting earliest in b.
func (m *Matcher) findLongestMatch(a []rune, alo, ahi, blo, bhi int) Block {
	besti, bestj, bestSize := alo, blo, 0

	// j2len[j] is the length of the longest match ending at a[i-1], b[j].
	clear(m.j2len)
	for i := alo; i < ahi; i++ {
		clear(m.newJ2len)
		for _, j := range m.b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := m.j2len[j-1] + 1
			m.newJ2len[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		m.j2len, m.newJ2len = m.newJ2len, m.j2len
	}

	// Popular runes never seed a match but may extend one.
	for besti > alo && bestj > blo && a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && a[besti+bestSize] == m.b[bestj+bestSize] {
		bestSize++
	}

	return Block{A: besti, B: bestj, Size: bestSize}
}

func ratio(matches, length int) float64 {
	if length == 0 {
		return 1
	}
	return 2 * float64(matches) / float64(length)
}

// Ratio is a convenience for a single comparison without autojunk.
func Ratio(a, b string) float64 {
	return NewMatcher([]rune(b), false).Ratio([]rune(a))
}
