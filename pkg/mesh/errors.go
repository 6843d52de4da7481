package mesh

import "errors"

// Failure kinds reported by mesh construction. Errors returned by this
// package and by stitch wrap one of these; test with errors.Is.
var (
	// ErrCoincidentPoints means points that must be distinct are equal
	ErrCoincidentPoints = errors.New("coincident points")

	// ErrDegenerateTriangle means three points are collinear
	ErrDegenerateTriangle = errors.New("degenerate triangle")

	// ErrTwistedOrder means a quad's points do not resolve to a single consistent split
	ErrTwistedOrder = errors.New("twisted point order")

	// ErrNonOrthogonal means the two rungs of a quad run the same way (unexpected winding)
	ErrNonOrthogonal = errors.New("unexpected quad winding")

	// ErrEdgeOverflow means an edge would be used by a third triangle, or the
	// ledger holds an edge in both collections
	ErrEdgeOverflow = errors.New("edge overflow")

	// ErrEdgeUnderflow means an edge or triangle with no recorded use was released
	ErrEdgeUnderflow = errors.New("edge underflow")

	// ErrShortChain means a point sequence is shorter than the operation needs
	ErrShortChain = errors.New("point chain too short")
)
