package geometry

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)

	tests := []struct {
		name string
		got  Vector3
		want Vector3
	}{
		{"add", a.Add(b), NewVector3(5, 7, 9)},
		{"sub", b.Sub(a), NewVector3(3, 3, 3)},
		{"mul", a.Mul(-2), NewVector3(-2, -4, -6)},
		{"cross", NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)), NewVector3(0, 0, 1)},
		{"cross anticommutes", NewVector3(0, 1, 0).Cross(NewVector3(1, 0, 0)), NewVector3(0, 0, -1)},
		{"min", NewVector3(1, 5, -2).Min(NewVector3(3, 0, -1)), NewVector3(1, 0, -2)},
		{"max", NewVector3(1, 5, -2).Max(NewVector3(3, 0, -1)), NewVector3(3, 5, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}
}

func TestVector3Lengths(t *testing.T) {
	v := NewVector3(3, 4, 12)
	if l := v.Length(); math.Abs(l-13) > 1e-12 {
		t.Errorf("Length: expected 13, got %v", l)
	}
	if d := NewVector3(1, 1, 1).Distance(NewVector3(4, 5, 13)); math.Abs(d-13) > 1e-12 {
		t.Errorf("Distance: expected 13, got %v", d)
	}
	if l := v.Normalize().Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Normalize: expected unit length, got %v", l)
	}
	if z := (Vector3{}).Normalize(); z != (Vector3{}) {
		t.Errorf("Normalize of zero: expected zero, got %v", z)
	}
}

func TestVector3Direction(t *testing.T) {
	dir := NewVector3(1, 1, 1).Direction(NewVector3(1, 1, -4))
	if dir != NewVector3(0, 0, -1) {
		t.Errorf("Direction: expected (0, 0, -1), got %v", dir)
	}
}

func TestCumulativeLengths(t *testing.T) {
	chain := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(3, 4, 0),
		NewVector3(3, 4, 2),
	}
	got := CumulativeLengths(chain)
	want := []float64{0, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if total := ChainLength(chain, len(chain)-1); math.Abs(total-got[len(got)-1]) > 1e-12 {
		t.Errorf("ChainLength %v disagrees with CumulativeLengths %v", total, got[len(got)-1])
	}
}

func TestVector3String(t *testing.T) {
	if s := NewVector3(1, -0.5, 2).String(); s != "(1.000000, -0.500000, 2.000000)" {
		t.Errorf("String: got %q", s)
	}
}
