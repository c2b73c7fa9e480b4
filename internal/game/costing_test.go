package game

import (
	"math"
	"testing"
)

func TestAverageInventoryCost(t *testing.T) {
	// Three rounds producing 10, 0, 5 units at costs 8, n/a, 12:
	// (10*8 + 5*12) / 15 = 9.333...
	history := []Record{
		{Round: 1, Produced: 10, Spent: 80},
		{Round: 2, Produced: 0, Spent: 0},
	}

	got := AverageInventoryCost(history, 5, 60, 12)
	want := 140.0 / 15.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("average cost = %v, want %v", got, want)
	}

	// Same answer once the third round is committed to history.
	history = append(history, Record{Round: 3, Produced: 5, Spent: 60})
	if got := AverageInventoryCost(history, 0, 0, 12); math.Abs(got-want) > 1e-9 {
		t.Fatalf("average cost from full history = %v, want %v", got, want)
	}
}

func TestAverageInventoryCost_FallsBackToCurrentCost(t *testing.T) {
	if got := AverageInventoryCost(nil, 0, 0, 13); got != 13 {
		t.Fatalf("average cost with no history = %v, want 13", got)
	}

	// History exists but nothing was ever produced.
	history := []Record{{Round: 1}, {Round: 2}}
	if got := AverageInventoryCost(history, 0, 0, 9); got != 9 {
		t.Fatalf("average cost with zero-production history = %v, want 9", got)
	}
}

func TestAverageInventoryCost_Idempotent(t *testing.T) {
	history := []Record{{Round: 1, Produced: 4, Spent: 48}}
	a := AverageInventoryCost(history, 2, 20, 10)
	b := AverageInventoryCost(history, 2, 20, 10)
	if a != b {
		t.Fatalf("repeated calls drifted: %v vs %v", a, b)
	}
}
