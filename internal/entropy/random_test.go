package entropy

import "testing"

// seqSource replays a fixed sequence of floats, cycling.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestIntBetween(t *testing.T) {
	tests := []struct {
		name   string
		draw   float64
		lo, hi int
		want   int
	}{
		{"lowest draw hits lo", 0, 8, 18, 8},
		{"highest draw hits hi", 0.999999, 8, 18, 18},
		{"midpoint", 0.5, 8, 18, 13},
		{"degenerate range", 0.7, 10, 10, 10},
		{"inverted range collapses to lo", 0.7, 10, 5, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IntBetween(&seqSource{vals: []float64{tc.draw}}, tc.lo, tc.hi)
			if got != tc.want {
				t.Fatalf("IntBetween(%v, %d, %d) = %d, want %d", tc.draw, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestIntBetween_StaysInRange(t *testing.T) {
	src := CryptoSource{}
	for i := 0; i < 1000; i++ {
		if got := IntBetween(src, 8, 18); got < 8 || got > 18 {
			t.Fatalf("IntBetween(8, 18) = %d, out of range", got)
		}
	}
}

func TestPickIndex(t *testing.T) {
	if got := PickIndex(&seqSource{vals: []float64{0}}, 10); got != 0 {
		t.Fatalf("PickIndex at 0 = %d, want 0", got)
	}
	if got := PickIndex(&seqSource{vals: []float64{0.999999}}, 10); got != 9 {
		t.Fatalf("PickIndex at 0.999999 = %d, want 9", got)
	}
	if got := PickIndex(&seqSource{vals: []float64{0.5}}, 0); got != 0 {
		t.Fatalf("PickIndex with empty set = %d, want 0", got)
	}
}

func TestCryptoSourceRange(t *testing.T) {
	src := CryptoSource{}
	for i := 0; i < 1000; i++ {
		v := src.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("Float() = %v, want [0, 1)", v)
		}
	}
}

func TestNilClientFallsBack(t *testing.T) {
	var c *Client // NewClient("") returns nil
	if c = NewClient(""); c != nil {
		t.Fatal("NewClient with empty key should be nil")
	}
	for i := 0; i < 100; i++ {
		v := c.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("nil client Float() = %v, want [0, 1)", v)
		}
	}
}
