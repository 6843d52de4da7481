package mesh

import (
	"fmt"
	"sort"
)

// Edge is an unordered pair of vertex indices. NewEdge stores the smaller
// index in A, so two edges over the same vertices compare equal.
type Edge struct {
	A, B int
}

// NewEdge creates the canonical edge between two vertex indices
func NewEdge(a, b int) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeLedger counts how many triangles use each edge. An edge used once is
// kept in the single-use collection, an edge used twice in the double-use
// collection, and no edge may be used a third time.
type EdgeLedger struct {
	single map[Edge]struct{}
	double map[Edge]struct{}
}

// NewEdgeLedger creates an empty ledger
func NewEdgeLedger() *EdgeLedger {
	return &EdgeLedger{
		single: make(map[Edge]struct{}),
		double: make(map[Edge]struct{}),
	}
}

// UseCount returns 0, 1 or 2. A corrupted ledger holding the edge in both
// collections reports 3.
func (l *EdgeLedger) UseCount(a, b int) int {
	e := NewEdge(a, b)
	_, one := l.single[e]
	_, two := l.double[e]
	switch {
	case one && two:
		return 3
	case two:
		return 2
	case one:
		return 1
	}
	return 0
}

// RecordUse adds one use to the edge {a,b}. The ledger is left unchanged
// when the edge is already used twice.
func (l *EdgeLedger) RecordUse(a, b int) error {
	e := NewEdge(a, b)
	if _, ok := l.double[e]; ok {
		return fmt.Errorf("%w: edge %d-%d already used by two triangles", ErrEdgeOverflow, e.A, e.B)
	}
	if _, ok := l.single[e]; ok {
		delete(l.single, e)
		l.double[e] = struct{}{}
		return nil
	}
	l.single[e] = struct{}{}
	return nil
}

// ReleaseUse removes one use from the edge {a,b}
func (l *EdgeLedger) ReleaseUse(a, b int) error {
	e := NewEdge(a, b)
	_, one := l.single[e]
	_, two := l.double[e]
	switch {
	case one && two:
		return fmt.Errorf("%w: edge %d-%d is recorded as both single and double use", ErrEdgeOverflow, e.A, e.B)
	case two:
		delete(l.double, e)
		l.single[e] = struct{}{}
	case one:
		delete(l.single, e)
	default:
		return fmt.Errorf("%w: edge %d-%d has no recorded use", ErrEdgeUnderflow, e.A, e.B)
	}
	return nil
}

// RecordTriangle adds one use to each of the three edges of a triangle, or
// to none of them if any would overflow.
func (l *EdgeLedger) RecordTriangle(v [3]int) error {
	edges := triangleEdges(v)
	for _, e := range edges {
		if l.UseCount(e.A, e.B) >= 2 {
			return fmt.Errorf("%w: edge %d-%d already used by two triangles", ErrEdgeOverflow, e.A, e.B)
		}
	}
	for _, e := range edges {
		if err := l.RecordUse(e.A, e.B); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseTriangle removes one use from each of the three edges of a
// triangle, or from none of them if any is inconsistent.
func (l *EdgeLedger) ReleaseTriangle(v [3]int) error {
	edges := triangleEdges(v)
	for _, e := range edges {
		switch l.UseCount(e.A, e.B) {
		case 0:
			return fmt.Errorf("%w: edge %d-%d has no recorded use", ErrEdgeUnderflow, e.A, e.B)
		case 3:
			return fmt.Errorf("%w: edge %d-%d is recorded as both single and double use", ErrEdgeOverflow, e.A, e.B)
		}
	}
	for _, e := range edges {
		if err := l.ReleaseUse(e.A, e.B); err != nil {
			return err
		}
	}
	return nil
}

// Single returns the edges used by exactly one triangle, sorted
func (l *EdgeLedger) Single() []Edge {
	return sortedEdges(l.single)
}

// Double returns the edges used by exactly two triangles, sorted
func (l *EdgeLedger) Double() []Edge {
	return sortedEdges(l.double)
}

// SingleCount returns the number of single-use edges
func (l *EdgeLedger) SingleCount() int {
	return len(l.single)
}

// DoubleCount returns the number of double-use edges
func (l *EdgeLedger) DoubleCount() int {
	return len(l.double)
}

// Clone returns an independent copy
func (l *EdgeLedger) Clone() *EdgeLedger {
	out := &EdgeLedger{
		single: make(map[Edge]struct{}, len(l.single)),
		double: make(map[Edge]struct{}, len(l.double)),
	}
	for e := range l.single {
		out.single[e] = struct{}{}
	}
	for e := range l.double {
		out.double[e] = struct{}{}
	}
	return out
}

func triangleEdges(v [3]int) [3]Edge {
	return [3]Edge{NewEdge(v[0], v[1]), NewEdge(v[1], v[2]), NewEdge(v[2], v[0])}
}

func sortedEdges(set map[Edge]struct{}) []Edge {
	out := make([]Edge, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
