package viz

import (
	"strings"
	"testing"

	"github.com/kasakh/quadlab/internal/integrand"
	"github.com/kasakh/quadlab/internal/quad"
)

func TestErrorCurve(t *testing.T) {
	if got := ErrorCurve("empty", nil); got != "" {
		t.Errorf("empty input should render nothing, got %q", got)
	}

	out := ErrorCurve("quadratic", []float64{0.1, 0.05, 0, 0.01})
	if !strings.Contains(out, "quadratic") {
		t.Error("caption missing from plot")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 8); got != strings.Repeat("─", 8) {
		t.Errorf("empty input should render a flat line, got %q", got)
	}

	out := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	runes := []rune(out)
	if len(runes) != 8 {
		t.Fatalf("expected 8 cells, got %d", len(runes))
	}
	if runes[0] != '▁' || runes[7] != '█' {
		t.Errorf("expected ramp from low to high, got %q", out)
	}
}

func TestLiveModelAccumulates(t *testing.T) {
	ig, err := integrand.Get("quadratic")
	if err != nil {
		t.Fatal(err)
	}

	m := NewLiveModel(ig, quad.UnitDomain(), 1, 42)
	m.accumulate(10000)

	est := m.Estimate()
	if est < 0.5 || est > 0.8 {
		t.Errorf("running estimate should approach 2/3, got %f", est)
	}
	if len(m.history) == 0 {
		t.Error("history should record the running estimate")
	}
}
