package ranges

import (
	"cmp"
	"time"
)

// Coverage tracks which windows of a scope have already been fetched.
// After every Add the stored spans are re-compressed, so the set stays
// sorted and non-overlapping. Adds are bounded by distinct fetches, so
// the full re-compress per insert is acceptable.
type Coverage[T Number] struct {
	spans []Span[T]
}

// Covered reports whether s lies entirely inside one stored span.
func (c *Coverage[T]) Covered(s Span[T]) bool {
	for _, have := range c.spans {
		if have.Contains(s) {
			return true
		}
	}
	return false
}

// Add records s as fetched and merges it into the existing cover.
func (c *Coverage[T]) Add(s Span[T]) {
	c.spans = Compress(append(c.spans, s), 0)
}

// Clear drops all coverage.
func (c *Coverage[T]) Clear() {
	c.spans = nil
}

// Spans returns the current cover, sorted ascending, for inspection.
func (c *Coverage[T]) Spans() []Span[T] {
	out := make([]Span[T], len(c.spans))
	copy(out, c.spans)
	return out
}

type expiringSpan[T cmp.Ordered] struct {
	span      Span[T]
	expiresAt time.Time
}

// ExpiringCoverage is Coverage with a lifetime per entry. Entries are
// kept distinct rather than compressed: merging two spans would let an
// unexpired fragment inherit a shorter neighbor's expiry.
type ExpiringCoverage[T Number] struct {
	entries []expiringSpan[T]

	// Now is overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (c *ExpiringCoverage[T]) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Covered reports whether s is fully inside a not-yet-expired entry.
func (c *ExpiringCoverage[T]) Covered(s Span[T]) bool {
	now := c.now()
	for _, e := range c.entries {
		if e.expiresAt.After(now) && e.span.Contains(s) {
			return true
		}
	}
	return false
}

// Add records s with the given expiry and drops entries that have
// already lapsed.
func (c *ExpiringCoverage[T]) Add(s Span[T], expiresAt time.Time) {
	now := c.now()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.expiresAt.After(now) {
			kept = append(kept, e)
		}
	}
	c.entries = append(kept, expiringSpan[T]{span: s, expiresAt: expiresAt})
}

// Clear drops all coverage.
func (c *ExpiringCoverage[T]) Clear() {
	c.entries = nil
}
