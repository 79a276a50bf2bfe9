package matrix

import "fmt"

// ErrTripletMismatch indicates COO slices of unequal length.
type ErrTripletMismatch struct {
	RowsLen  int
	ColsLen  int
	DistsLen int
}

func (e *ErrTripletMismatch) Error() string {
	return fmt.Sprintf("triplet length mismatch: rows=%d cols=%d dists=%d",
		e.RowsLen, e.ColsLen, e.DistsLen)
}

// ErrRowOrder indicates a decreasing row index in a COO matrix.
type ErrRowOrder struct {
	Index int
	Row   int64
	Prev  int64
}

func (e *ErrRowOrder) Error() string {
	return fmt.Sprintf("row indices not non-decreasing: rows[%d]=%d after %d",
		e.Index, e.Row, e.Prev)
}

// ErrShapeMismatch indicates a block whose dimensions disagree with the
// declared reference/query counts.
type ErrShapeMismatch struct {
	Block    string
	WantRows int
	WantCols int
	GotRows  int
	GotCols  int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s block shape mismatch: want %dx%d, got %dx%d",
		e.Block, e.WantRows, e.WantCols, e.GotRows, e.GotCols)
}
