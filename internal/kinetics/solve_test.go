package kinetics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/splicesim/internal/dynamo"
)

func defaultGrid(t *testing.T) dynamo.TimeGrid {
	t.Helper()
	g, err := dynamo.Linspace(0, 20, 2001)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestSolve_InitialPoint(t *testing.T) {
	tr, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}, dynamo.TimeGrid{0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if tr.P[0] != 0 || tr.M[0] != 0 {
		t.Errorf("expected P=M=0 at t=0, got P=%v M=%v", tr.P[0], tr.M[0])
	}
	if f := tr.Fraction(0); f != 0 {
		t.Errorf("expected fraction 0 at t=0, got %v", f)
	}
}

func TestSolve_SteadyState(t *testing.T) {
	tr, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}, dynamo.TimeGrid{0, 100, 500})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(tr.P[1]-1.0) > 1e-6 {
		t.Errorf("P(100) = %v, want 1.0", tr.P[1])
	}
	if math.Abs(tr.M[1]-10.0) > 1e-3 {
		t.Errorf("M(100) = %v, want ~10.0", tr.M[1])
	}
	if math.Abs(tr.M[2]-10.0) > 1e-6 {
		t.Errorf("M(500) = %v, want 10.0", tr.M[2])
	}
}

func TestSolve_SteadyStateAnyInitial(t *testing.T) {
	p := Params{Tau: 2, Sigma: 0.5, Lambda: 0.2}
	ps, ms := p.SteadyState()
	for _, x0 := range []Initial{{}, {P0: 50}, {M0: 50}, {P0: 3, M0: 7}} {
		tr, err := Solve(p, x0, dynamo.TimeGrid{400})
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		if math.Abs(tr.P[0]-ps) > 1e-6 || math.Abs(tr.M[0]-ms) > 1e-6 {
			t.Errorf("x0=%+v: got (%v, %v), want (%v, %v)", x0, tr.P[0], tr.M[0], ps, ms)
		}
	}
}

func TestSolve_ClosedFormRegression(t *testing.T) {
	p := Params{Tau: 1, Sigma: 2, Lambda: 0.1}
	tr, err := Solve(p, Initial{}, dynamo.TimeGrid{0, 1, 5})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	wantP := (0-0.5)*math.Exp(-2) + 0.5
	if math.Abs(tr.P[1]-wantP) > 1e-12 {
		t.Errorf("P(1) = %.15f, want %.15f", tr.P[1], wantP)
	}

	ps, ms := 0.5, 10.0
	mfrac := p.Sigma * (0 - ps) / (p.Lambda - p.Sigma)
	for i, tt := range tr.Times {
		want := mfrac*math.Exp(-p.Sigma*tt) + (0-ms-mfrac)*math.Exp(-p.Lambda*tt) + ms
		if math.Abs(tr.M[i]-want) > 1e-12 {
			t.Errorf("M(%v) = %.15f, want %.15f", tt, tr.M[i], want)
		}
	}
}

func TestSolve_NonNegative(t *testing.T) {
	grid := defaultGrid(t)
	rates := []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5}
	for _, tau := range []float64{0.5, 1, 2} {
		for _, sigma := range rates {
			for _, lambda := range rates {
				tr, err := Solve(Params{Tau: tau, Sigma: sigma, Lambda: lambda}, Initial{}, grid)
				if err != nil {
					t.Fatalf("solve failed: %v", err)
				}
				for i := range tr.Times {
					if tr.P[i] < 0 || tr.M[i] < 0 {
						t.Fatalf("τ=%v σ=%v λ=%v t=%v: negative state (%v, %v)",
							tau, sigma, lambda, tr.Times[i], tr.P[i], tr.M[i])
					}
				}
			}
		}
	}
}

func TestSolve_TauInvariance(t *testing.T) {
	grid := defaultGrid(t)
	base, err := Solve(Params{Tau: 1, Sigma: 0.7, Lambda: 0.15}, Initial{}, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	for _, k := range []float64{0.01, 0.5, 3, 1000} {
		scaled, err := Solve(Params{Tau: k, Sigma: 0.7, Lambda: 0.15}, Initial{}, grid)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		for i := range grid {
			if d := math.Abs(scaled.Fraction(i) - base.Fraction(i)); d > 1e-12 {
				t.Fatalf("k=%v t=%v: fraction differs by %v", k, grid[i], d)
			}
		}
	}
}

func TestSolve_MatchesDerivative(t *testing.T) {
	const h = 1e-5
	tests := []struct {
		p  Params
		x0 Initial
	}{
		{Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}},
		{Params{Tau: 3, Sigma: 0.2, Lambda: 2}, Initial{P0: 4, M0: 1}},
		{Params{Tau: 1, Sigma: 1, Lambda: 1}, Initial{}},
		{Params{Tau: 1, Sigma: 1, Lambda: 1 + 1e-10}, Initial{P0: 2}},
	}

	for _, tt := range tests {
		model := NewModel(tt.p)
		for _, at := range []float64{0.5, 2, 7} {
			tr, err := Solve(tt.p, tt.x0, dynamo.TimeGrid{at - h, at, at + h})
			if err != nil {
				t.Fatalf("%v: solve failed: %v", tt.p, err)
			}
			numeric := dynamo.State{
				(tr.P[2] - tr.P[0]) / (2 * h),
				(tr.M[2] - tr.M[0]) / (2 * h),
			}
			exact := model.Derive(tr.State(1), at)
			if r := numeric.Sub(exact).Norm(); r > 1e-6 {
				t.Errorf("%v t=%v: residual %e", tt.p, at, r)
			}
		}
	}
}

func TestSolve_DegenerateLimit(t *testing.T) {
	grid := defaultGrid(t)
	p := Params{Tau: 1, Sigma: 1, Lambda: 1}

	tr, err := Solve(p, Initial{}, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !tr.Degenerate {
		t.Error("expected trajectory flagged degenerate")
	}

	for i, tt := range tr.Times {
		want := 1 - math.Exp(-tt) - tt*math.Exp(-tt)
		if !tr.State(i).IsValid() {
			t.Fatalf("t=%v: non-finite state", tt)
		}
		if math.Abs(tr.M[i]-want) > 1e-12 {
			t.Fatalf("M(%v) = %v, want %v", tt, tr.M[i], want)
		}
	}

	near, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 1 + 1e-6}, Initial{}, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if near.Degenerate {
		t.Error("1e-6 separation should not be degenerate")
	}
	for i := range grid {
		if math.Abs(near.M[i]-tr.M[i]) > 1e-5 {
			t.Fatalf("t=%v: near-degenerate M=%v far from limit %v", grid[i], near.M[i], tr.M[i])
		}
	}
}

func TestSolve_StrictRates(t *testing.T) {
	_, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 1}, Initial{}, dynamo.TimeGrid{0, 1}, WithStrictRates())
	if !errors.Is(err, dynamo.ErrDegenerateRates) {
		t.Fatalf("expected ErrDegenerateRates, got %v", err)
	}

	_, err = Solve(Params{Tau: 1, Sigma: 1, Lambda: 1.01}, Initial{}, dynamo.TimeGrid{0, 1},
		WithStrictRates(), WithDegenerateTolerance(0.05))
	if !errors.Is(err, dynamo.ErrDegenerateRates) {
		t.Fatalf("expected ErrDegenerateRates with widened tolerance, got %v", err)
	}

	if _, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}, dynamo.TimeGrid{0, 1}, WithStrictRates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSolve_InvalidInput(t *testing.T) {
	good := Params{Tau: 1, Sigma: 1, Lambda: 0.1}
	grid := dynamo.TimeGrid{0, 1}

	tests := []struct {
		name string
		p    Params
		x0   Initial
		grid dynamo.TimeGrid
	}{
		{"zero tau", Params{Tau: 0, Sigma: 1, Lambda: 0.1}, Initial{}, grid},
		{"negative sigma", Params{Tau: 1, Sigma: -1, Lambda: 0.1}, Initial{}, grid},
		{"zero lambda", Params{Tau: 1, Sigma: 1, Lambda: 0}, Initial{}, grid},
		{"NaN sigma", Params{Tau: 1, Sigma: math.NaN(), Lambda: 0.1}, Initial{}, grid},
		{"Inf tau", Params{Tau: math.Inf(1), Sigma: 1, Lambda: 0.1}, Initial{}, grid},
		{"negative P0", good, Initial{P0: -1}, grid},
		{"negative M0", good, Initial{M0: -0.5}, grid},
		{"negative time", good, Initial{}, dynamo.TimeGrid{-1, 0}},
		{"non-monotonic grid", good, Initial{}, dynamo.TimeGrid{0, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Solve(tt.p, tt.x0, tt.grid)
			if !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if tr != nil {
				t.Error("trajectory returned alongside error")
			}
		})
	}
}

func TestSolve_EmptyGrid(t *testing.T) {
	tr, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}, dynamo.TimeGrid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 0 || len(tr.P) != 0 || len(tr.M) != 0 {
		t.Errorf("expected empty trajectory, got %d points", tr.Len())
	}
}

func TestSolve_DoesNotAliasGrid(t *testing.T) {
	grid := dynamo.TimeGrid{0, 1, 2}
	tr, err := Solve(Params{Tau: 1, Sigma: 1, Lambda: 0.1}, Initial{}, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	grid[1] = 42
	if tr.Times[1] != 1 {
		t.Error("trajectory shares memory with input grid")
	}
}

func BenchmarkSolve(b *testing.B) {
	grid, _ := dynamo.Linspace(0, 20, 2001)
	p := Params{Tau: 1, Sigma: 1, Lambda: 0.1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Solve(p, Initial{}, grid)
	}
}

func TestFunc_MatchesSolve(t *testing.T) {
	p := Params{Tau: 1.5, Sigma: 0.4, Lambda: 0.3}
	x0 := Initial{P0: 1, M0: 2}
	grid := dynamo.TimeGrid{0, 0.3, 2.5, 11}

	tr, err := Solve(p, x0, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	f, err := Func(p, x0)
	if err != nil {
		t.Fatalf("func failed: %v", err)
	}
	for i, tt := range grid {
		pp, mm := f(tt)
		if pp != tr.P[i] || mm != tr.M[i] {
			t.Errorf("t=%v: Func=(%v, %v), Solve=(%v, %v)", tt, pp, mm, tr.P[i], tr.M[i])
		}
	}

	if _, err := Func(Params{Tau: 1, Sigma: 1, Lambda: 1}, Initial{}, WithStrictRates()); !errors.Is(err, dynamo.ErrDegenerateRates) {
		t.Errorf("expected ErrDegenerateRates, got %v", err)
	}
}

func TestSolve_Overflow(t *testing.T) {
	p := Params{Tau: 1e308, Sigma: 1e-300, Lambda: 1}
	_, err := Solve(p, Initial{}, dynamo.TimeGrid{0, 1})
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}
