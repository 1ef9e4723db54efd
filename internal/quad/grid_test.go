package quad

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestGridSizeAndCoverage(t *testing.T) {
	tests := []struct {
		n, dim int
		want   int
	}{
		{1, 1, 1},
		{1, 5, 1},
		{2, 3, 8},
		{3, 2, 9},
		{4, 3, 64},
		{10, 1, 10},
	}

	for _, tt := range tests {
		points, err := Grid(UnitDomain(), tt.n, tt.dim)
		if err != nil {
			t.Fatalf("Grid(%d, %d) failed: %v", tt.n, tt.dim, err)
		}
		if len(points) != tt.want {
			t.Errorf("Grid(%d, %d): expected %d points, got %d", tt.n, tt.dim, tt.want, len(points))
		}

		seen := make(map[string]bool, len(points))
		for _, p := range points {
			if len(p) != tt.dim {
				t.Fatalf("Grid(%d, %d): point has %d coordinates", tt.n, tt.dim, len(p))
			}
			if !p.IsValid() {
				t.Fatalf("Grid(%d, %d): non-finite point %v", tt.n, tt.dim, p)
			}
			key := fmt.Sprintf("%v", p)
			if seen[key] {
				t.Errorf("Grid(%d, %d): duplicate point %v", tt.n, tt.dim, p)
			}
			seen[key] = true

			for _, x := range p {
				if x < 0 || x > 1 {
					t.Errorf("Grid(%d, %d): coordinate %f outside [0,1]", tt.n, tt.dim, x)
				}
			}
		}
	}
}

func TestGridAxisSpacing(t *testing.T) {
	dom := Domain{Lower: -2, Upper: 4}
	n := 7

	points, err := Grid(dom, n, 1)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	if points[0][0] != dom.Lower {
		t.Errorf("first value should be the lower bound, got %f", points[0][0])
	}
	if points[n-1][0] != dom.Upper {
		t.Errorf("last value should be the upper bound, got %f", points[n-1][0])
	}

	step := dom.Width() / float64(n-1)
	for i := 1; i < n; i++ {
		gap := points[i][0] - points[i-1][0]
		if math.Abs(gap-step) > 1e-12 {
			t.Errorf("uneven spacing at index %d: %f vs %f", i, gap, step)
		}
	}
}

func TestGridDegenerateSinglePoint(t *testing.T) {
	dom := Domain{Lower: 0.25, Upper: 0.75}

	points, err := Grid(dom, 1, 3)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	for _, x := range points[0] {
		if x != dom.Lower {
			t.Errorf("degenerate grid should sit at the lower bound, got %f", x)
		}
	}
}

func TestGridPreconditions(t *testing.T) {
	tests := []struct {
		name string
		dom  Domain
		n    int
		dim  int
		want error
	}{
		{"zero n", UnitDomain(), 0, 1, ErrInvalidSamples},
		{"negative n", UnitDomain(), -3, 1, ErrInvalidSamples},
		{"zero dim", UnitDomain(), 2, 0, ErrInvalidDimension},
		{"negative dim", UnitDomain(), 2, -1, ErrInvalidDimension},
		{"inverted domain", Domain{Lower: 1, Upper: 0}, 2, 1, ErrInvalidDomain},
		{"nan bound", Domain{Lower: math.NaN(), Upper: 1}, 2, 1, ErrInvalidDomain},
		{"overflow", UnitDomain(), 1 << 20, 4, ErrGridTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(tt.dom, tt.n, tt.dim)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGridEqualDomainBounds(t *testing.T) {
	dom := Domain{Lower: 0.5, Upper: 0.5}

	points, err := Grid(dom, 3, 2)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}
	for _, p := range points {
		for _, x := range p {
			if x != 0.5 {
				t.Errorf("collapsed domain should pin every coordinate, got %f", x)
			}
		}
	}
}
