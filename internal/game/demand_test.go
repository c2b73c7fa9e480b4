package game

import "testing"

func TestDemand(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		coeff      float64
		price      float64
		multiplier float64
		want       int
	}{
		{"base price sensitivity", 60, -2, 10, 1.0, 40},
		{"zero demand boundary", 60, -2, 30, 1.0, 0},
		{"clamped below zero", 60, -2, 31, 1.0, 0},
		{"far past zero", 60, -2, 500, 1.0, 0},
		{"multiplier steepens curve", 60, -2, 15, 1.8, 6},
		{"multiplier flattens curve", 50, -2, 7, 0.65, 40}, // 50 - 9.1 = 40.9, truncated
		{"free toys", 60, -2, 0, 1.0, 60},
		{"positive coefficient", 10, 2, 5, 1.0, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Demand(tc.base, tc.coeff, tc.price, tc.multiplier)
			if got != tc.want {
				t.Fatalf("Demand(%v, %v, %v, %v) = %d, want %d",
					tc.base, tc.coeff, tc.price, tc.multiplier, got, tc.want)
			}
		})
	}
}

func TestDemand_NeverNegative(t *testing.T) {
	for price := 0.0; price <= 100; price++ {
		for _, sc := range Catalog {
			if got := Demand(60, -2, price, sc.Multiplier); got < 0 {
				t.Fatalf("Demand at price %v under %q = %d, want >= 0", price, sc.Name, got)
			}
		}
	}
}

func TestDemand_Reproducible(t *testing.T) {
	a := Demand(60, -2, 17, 1.4)
	b := Demand(60, -2, 17, 1.4)
	if a != b {
		t.Fatalf("repeated Demand calls disagree: %d vs %d", a, b)
	}
}
