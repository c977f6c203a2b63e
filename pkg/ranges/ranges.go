// Package ranges provides interval arithmetic over ordered scalars
// (epoch seconds, milliseconds, byte offsets) plus coverage caches that
// answer "has this window already been fetched in full".
package ranges

import (
	"cmp"
	"slices"
)

// Number constrains span types that support arithmetic, which Compress
// needs for its tolerance handling.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Span is a half-open-agnostic interval with Start <= End.
// Spans are value objects; build a new one instead of mutating.
type Span[T cmp.Ordered] struct {
	Start T `json:"start"`
	End   T `json:"end"`
}

// NewSpan normalizes the pair so Start <= End always holds.
func NewSpan[T cmp.Ordered](start, end T) Span[T] {
	if end < start {
		start, end = end, start
	}
	return Span[T]{Start: start, End: end}
}

// Contains reports whether o lies entirely inside s. A request is only
// satisfied by a cached span that contains it fully; partial overlap is
// a miss for the whole request.
func (s Span[T]) Contains(o Span[T]) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Overlaps reports whether s and o share any point, including the case
// where one fully encloses the other.
func (s Span[T]) Overlaps(o Span[T]) bool {
	if s.Start >= o.Start && s.Start <= o.End {
		return true
	}
	if s.End >= o.Start && s.End <= o.End {
		return true
	}
	return s.Start <= o.Start && s.End >= o.End
}

// Compress sorts the spans ascending by start and coalesces every pair
// that overlaps or sits within tolerance of each other, producing the
// minimal cover of the input. tolerance > 0 lets near-adjacent spans
// merge at the cost of slight over-coverage.
func Compress[T Number](spans []Span[T], tolerance T) []Span[T] {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span[T], len(spans))
	copy(sorted, spans)
	slices.SortFunc(sorted, func(a, b Span[T]) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	out := make([]Span[T], 0, len(sorted))
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if s.Start <= cur.End+tolerance {
			cur.End = max(cur.End, s.End)
			continue
		}
		out = append(out, cur)
		cur = s
	}
	return append(out, cur)
}
