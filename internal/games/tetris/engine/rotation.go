package engine

// rotator tracks the rotation index of the active piece.
// Rotation is speculative: the board peeks the next state, tests it for
// collision and only then commits the index.
type rotator struct {
	kind Kind
	idx  int
}

// assign binds a new kind and resets the index to 0.
func (r *rotator) assign(k Kind) {
	states(k) // validate
	r.kind = k
	r.idx = 0
}

// current returns the shared state at the current index.
func (r *rotator) current() Matrix {
	return r.stateAt(r.idx)
}

// peekNext returns the next state and its index without mutating r.
func (r *rotator) peekNext() (Matrix, int) {
	next := (r.idx + 1) % r.kind.RotationCount()
	return r.stateAt(next), next
}

// setIndex commits a previously peeked index.
func (r *rotator) setIndex(i int) {
	r.idx = i
}

func (r *rotator) index() int {
	return r.idx
}

func (r *rotator) stateAt(i int) Matrix {
	if r.kind == KindNone {
		panic("engine: rotation queried before a piece was assigned")
	}
	return states(r.kind)[i]
}
