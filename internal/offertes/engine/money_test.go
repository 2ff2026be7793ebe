package engine

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{203.125, 203.13}, // representable half rounds away from zero
		{-203.125, -203.13},
		{1.004, 1.0},
		{1.006, 1.01},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundQuarter(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{23.4, 23.5},
		{23.37, 23.25},
		{0.125, 0.25}, // half a step rounds up
		{-0.125, -0.25},
		{0.12, 0},
		{6, 6},
	}
	for _, tt := range tests {
		if got := roundQuarter(tt.in); got != tt.want {
			t.Errorf("roundQuarter(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	if got := ceilDiv(100, 60); got != 2 {
		t.Fatalf("ceilDiv(100, 60) = %v, want 2", got)
	}
	if got := ceilDiv(120, 60); got != 2 {
		t.Fatalf("ceilDiv(120, 60) = %v, want 2", got)
	}
	if got := ceilDiv(9, 1.8); got != 5 {
		t.Fatalf("ceilDiv(9, 1.8) = %v, want 5", got)
	}
}

func TestEstimatedPerimeter(t *testing.T) {
	if got := estimatedPerimeter(25); got != 20 {
		t.Fatalf("estimatedPerimeter(25) = %v, want 20", got)
	}
}
