package engine

// ViewData is a render snapshot of the active piece.
// All matrices are copies owned by the caller.
type ViewData struct {
	Shape Matrix // Current rotation state of the active piece
	Col   int    // Anchor column
	Row   int    // Anchor row
	Next  Matrix // First rotation state of the upcoming kind; nil if none
}

// Grid returns a copy of the background grid (locked cells only).
func (b *Board) Grid() Matrix {
	return b.grid.Clone()
}

// View returns the active piece snapshot. It panics if no piece is active.
func (b *Board) View() ViewData {
	b.requireActive()
	return ViewData{
		Shape: b.rot.current().Clone(),
		Col:   b.col,
		Row:   b.row,
		Next:  b.NextPreview(),
	}
}

// Rotation returns the rotation index of the active piece.
func (b *Board) Rotation() int {
	b.requireActive()
	return b.rot.index()
}

// GhostRow returns the anchor row the active piece would lock at if dropped.
func (b *Board) GhostRow() int {
	return b.row + b.DropDistance()
}

// NextPreview returns the first rotation state of the upcoming kind, or nil
// when the source has nothing upcoming.
func (b *Board) NextPreview() Matrix {
	return preview(b.next)
}

// HeldPreview returns the first rotation state of the held kind, or nil when
// nothing is held.
func (b *Board) HeldPreview() Matrix {
	return preview(b.held)
}

func preview(k Kind) Matrix {
	if k == KindNone {
		return nil
	}
	return states(k)[0].Clone()
}
