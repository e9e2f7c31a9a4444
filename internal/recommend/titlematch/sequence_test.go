// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package titlematch

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{a: "abcd", b: "bcde", want: 0.75},
		{a: "apple", b: "appel", want: 0.8},
		{a: "ape", b: "appel", want: 0.75},
		{a: "peach", b: "appel", want: 0.4},
		{a: "puppy", b: "appel", want: 0.4},
		{a: "the dark knight", b: "dark knight", want: 22.0 / 26.0},
		{a: "", b: "", want: 1},
		{a: "abc", b: "", want: 0},
		{a: "abc", b: "xyz", want: 0},
		{a: "identical", b: "identical", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatcher_UpperBounds(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]rune("bcde"), false)
	a := []rune("abcd")

	if got := m.QuickRatio(a); got != 0.75 {
		t.Errorf("QuickRatio() = %v, want 0.75", got)
	}
	if got := m.RealQuickRatio(a); got != 1 {
		t.Errorf("RealQuickRatio() = %v, want 1", got)
	}

	// Bounds must never fall below the exact ratio.
	for _, cand := range []string{"abcd", "dcba", "bbbb", "e", "bcdebcde", ""} {
		r := []rune(cand)
		exact := m.Ratio(r)
		if q := m.QuickRatio(r); q < exact {
			t.Errorf("QuickRatio(%q) = %v < Ratio %v", cand, q, exact)
		}
		if rq := m.RealQuickRatio(r); rq < exact {
			t.Errorf("RealQuickRatio(%q) = %v < Ratio %v", cand, rq, exact)
		}
	}
}

func TestMatcher_MatchingBlocks(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]rune("abcd"), false)
	got := m.MatchingBlocks([]rune("abxcd"))
	want := []Block{{A: 0, B: 0, Size: 2}, {A: 3, B: 2, Size: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchingBlocks() = %+v, want %+v", got, want)
	}
}

func TestMatcher_Reusable(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]rune("appel"), false)
	first := m.Ratio([]rune("apple"))
	_ = m.Ratio([]rune("puppy"))
	if again := m.Ratio([]rune("apple")); again != first {
		t.Errorf("Ratio() after reuse = %v, want %v", again, first)
	}
}

func TestNewMatcher_Autojunk(t *testing.T) {
	t.Parallel()

	b := []rune(strings.Repeat("a", 200) + "xyz")

	junked := NewMatcher(b, true)
	if _, ok := junked.b2j['a']; ok {
		t.Error("popular rune 'a' still indexed with autojunk")
	}
	if _, ok := junked.b2j['x']; !ok {
		t.Error("rune 'x' missing from index")
	}

	plain := NewMatcher(b, false)
	if _, ok := plain.b2j['a']; !ok {
		t.Error("rune 'a' missing without autojunk")
	}

	short := NewMatcher([]rune(strings.Repeat("a", 50)), true)
	if _, ok := short.b2j['a']; !ok {
		t.Error("autojunk applied to a sequence shorter than 200 runes")
	}
}
