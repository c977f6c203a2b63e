package ranges

import (
	"math/rand"
	"testing"
)

func TestSpanContains(t *testing.T) {
	tests := []struct {
		name    string
		big     Span[int64]
		small   Span[int64]
		want    bool
	}{
		{"identical", Span[int64]{0, 100}, Span[int64]{0, 100}, true},
		{"nested", Span[int64]{0, 100}, Span[int64]{10, 90}, true},
		{"touching start", Span[int64]{0, 100}, Span[int64]{0, 50}, true},
		{"touching end", Span[int64]{0, 100}, Span[int64]{50, 100}, true},
		{"overhang left", Span[int64]{10, 100}, Span[int64]{5, 50}, false},
		{"overhang right", Span[int64]{0, 100}, Span[int64]{50, 150}, false},
		{"disjoint", Span[int64]{0, 100}, Span[int64]{200, 300}, false},
	}
	for _, tt := range tests {
		if got := tt.big.Contains(tt.small); got != tt.want {
			t.Errorf("%s: Contains=%v want %v", tt.name, got, tt.want)
		}
	}
}

// Containment must agree with the pointwise definition: every instant of
// the smaller span lies in the bigger one.
func TestSpanContainsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		big := NewSpan(rng.Int63n(1000), rng.Int63n(1000))
		small := NewSpan(rng.Int63n(1000), rng.Int63n(1000))
		want := small.Start >= big.Start && small.End <= big.End
		if got := big.Contains(small); got != want {
			t.Fatalf("Contains(%+v, %+v)=%v want %v", big, small, got, want)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span[int64]{10, 20}
	tests := []struct {
		name string
		b    Span[int64]
		want bool
	}{
		{"left overlap", Span[int64]{5, 15}, true},
		{"right overlap", Span[int64]{15, 25}, true},
		{"enclosing", Span[int64]{0, 30}, true},
		{"enclosed", Span[int64]{12, 18}, true},
		{"touching", Span[int64]{20, 30}, true},
		{"disjoint left", Span[int64]{0, 5}, false},
		{"disjoint right", Span[int64]{25, 30}, false},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps=%v want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(a); got != tt.want {
			t.Errorf("%s (swapped): Overlaps=%v want %v", tt.name, got, tt.want)
		}
	}
}

func TestCompress(t *testing.T) {
	in := []Span[int64]{{50, 60}, {0, 10}, {5, 20}, {20, 30}, {100, 110}}
	got := Compress(in, 0)
	want := []Span[int64]{{0, 30}, {50, 60}, {100, 110}}
	if len(got) != len(want) {
		t.Fatalf("Compress len=%d want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Compress[%d]=%+v want %+v", i, got[i], want[i])
		}
	}
}

func TestCompressTolerance(t *testing.T) {
	in := []Span[int64]{{0, 10}, {13, 20}}
	if got := Compress(in, 0); len(got) != 2 {
		t.Fatalf("tolerance 0 merged disjoint spans: %+v", got)
	}
	got := Compress(in, 5)
	if len(got) != 1 || got[0] != (Span[int64]{0, 20}) {
		t.Fatalf("tolerance 5 did not merge: %+v", got)
	}
}

func TestCompressIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		in := make([]Span[int64], rng.Intn(20))
		for j := range in {
			in[j] = NewSpan(rng.Int63n(500), rng.Int63n(500))
		}
		once := Compress(in, 0)
		twice := Compress(once, 0)
		if len(once) != len(twice) {
			t.Fatalf("not idempotent: %+v vs %+v", once, twice)
		}
		for j := range once {
			if once[j] != twice[j] {
				t.Fatalf("not idempotent at %d: %+v vs %+v", j, once, twice)
			}
		}
	}
}

// The compressed output must cover exactly the union of the input:
// every input point is covered and no output point lies outside all
// input spans.
func TestCompressCoversUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		in := make([]Span[int64], 1+rng.Intn(10))
		for j := range in {
			in[j] = NewSpan(rng.Int63n(200), rng.Int63n(200))
		}
		out := Compress(in, 0)

		covered := func(spans []Span[int64], p int64) bool {
			for _, s := range spans {
				if p >= s.Start && p <= s.End {
					return true
				}
			}
			return false
		}
		for p := int64(0); p <= 200; p++ {
			if covered(in, p) != covered(out, p) {
				t.Fatalf("point %d coverage mismatch: in=%+v out=%+v", p, in, out)
			}
		}
	}
}
