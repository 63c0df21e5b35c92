package affine

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func pointsClose(a, b Point) bool {
	scale := math.Max(1, math.Max(math.Abs(b.X), math.Abs(b.Y)))
	return math.Abs(a.X-b.X) <= tolerance*scale && math.Abs(a.Y-b.Y) <= tolerance*scale
}

func TestSolveMapsBasisExactly(t *testing.T) {
	from := Basis{Pt(-2, 0), Pt(-1, 0), Pt(-2, 1)}
	to := Basis{Pt(1, 1), Pt(1, 2), Pt(0, 1)}

	m, err := Solve(from, to)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for i := range from {
		got := m.Apply(from[i])
		if !pointsClose(got, to[i]) {
			t.Errorf("point %d mapped to %+v, want %+v", i, got, to[i])
		}
	}
}

func TestSolveRejectsDegenerateBasis(t *testing.T) {
	cases := []struct {
		name string
		from Basis
	}{
		{"coincident", Basis{Pt(1, 1), Pt(1, 1), Pt(1, 1)}},
		{"collinear", Basis{Pt(0, 0), Pt(1, 1), Pt(2, 2)}},
		{"two equal", Basis{Pt(0, 0), Pt(0, 0), Pt(0, 1)}},
	}
	to := BasisForSize(10, 10)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Solve(tc.from, to); err != ErrInvalidBasis {
				t.Fatalf("expected ErrInvalidBasis, got %v", err)
			}
		})
	}
}

func TestSolveNeverReturnsNaN(t *testing.T) {
	from := Basis{Pt(0, 0), Pt(1e-7, 0), Pt(0, 1e-7)}
	to := Basis{Pt(5, 5), Pt(105, 5), Pt(5, 205)}
	m, err := Solve(from, to)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for _, v := range []float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("matrix contains non-finite entry: %+v", m)
		}
	}
}

func TestInvertRoundTrip(t *testing.T) {
	from := BasisForSize(800, 600)
	to := Basis{Pt(12.5, -3), Pt(410, 55), Pt(-80, 310.25)}
	m, err := Solve(from, to)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	points := []Point{Pt(0, 0), Pt(1, 1), Pt(-37.5, 92), Pt(1e6, -1e6), Pt(0.25, 400)}
	for _, p := range points {
		got := inv.Apply(m.Apply(p))
		if !pointsClose(got, p) {
			t.Errorf("round trip moved %+v to %+v", p, got)
		}
	}
}

func TestInvertSingular(t *testing.T) {
	m := Matrix{A: 1, B: 2, D: 2, E: 4, C: 7, F: -3}
	if _, err := m.Invert(); err != ErrSingularMatrix {
		t.Fatalf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestApplyAllPreservesLength(t *testing.T) {
	m := Matrix{A: 2, E: 3, C: 1, F: -1}
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(0, 1)}
	out := m.ApplyAll(pts)
	if len(out) != len(pts) {
		t.Fatalf("expected %d points, got %d", len(pts), len(out))
	}
	want := []Point{Pt(1, -1), Pt(3, -1), Pt(1, 2)}
	for i := range out {
		if !pointsClose(out[i], want[i]) {
			t.Errorf("point %d: got %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestBasisTranslate(t *testing.T) {
	b := BasisForSize(4, 2).Translate(Pt(-1, 3))
	want := Basis{Pt(-1, 3), Pt(3, 3), Pt(-1, 5)}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
}
