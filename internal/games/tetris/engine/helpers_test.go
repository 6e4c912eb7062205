package engine

// cycleSource repeats a fixed sequence of kinds forever.
type cycleSource struct {
	kinds []Kind
	pos   int
}

func newCycleSource(kinds ...Kind) *cycleSource {
	return &cycleSource{kinds: kinds}
}

func (s *cycleSource) Next() Kind {
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}

func (s *cycleSource) Peek() Kind {
	return s.kinds[s.pos%len(s.kinds)]
}

// finiteSource yields its kinds once, then reports nothing upcoming.
type finiteSource struct {
	kinds []Kind
}

func (s *finiteSource) Next() Kind {
	if len(s.kinds) == 0 {
		return KindNone
	}
	k := s.kinds[0]
	s.kinds = s.kinds[1:]
	return k
}

func (s *finiteSource) Peek() Kind {
	if len(s.kinds) == 0 {
		return KindNone
	}
	return s.kinds[0]
}

// fillRow sets every cell of row r to v.
func fillRow(g Matrix, r, v int) {
	for c := range g[r] {
		g[r][c] = v
	}
}

// countCells returns the number of non-zero cells in m.
func countCells(m Matrix) int {
	n := 0
	for _, line := range m {
		for _, v := range line {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
