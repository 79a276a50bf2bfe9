// Package matrix provides the sparse and dense distance matrix shapes shared
// by the sparseknn operations.
//
// A Triplets value is a row-major COO sparse matrix: three parallel slices of
// row indices, column indices and distances. Row indices must be
// non-decreasing so that each row's entries form a contiguous sub-range of
// the slices. A Dense value is a rectangular row-major float32 block with no
// missing entries.
package matrix

// Triplets is a sparse distance matrix in coordinate (COO) form.
//
// The three slices are parallel and must have equal length. Rows must be
// non-decreasing; no order is imposed on columns within a row. Index types
// match the distance pipeline this package interoperates with: 64-bit signed
// indices and float32 distances.
type Triplets struct {
	Rows  []int64
	Cols  []int64
	Dists []float32
}

// Len returns the number of stored entries.
func (t Triplets) Len() int {
	return len(t.Dists)
}

// Append adds one entry. The caller is responsible for keeping row indices
// non-decreasing.
func (t *Triplets) Append(row, col int64, dist float32) {
	t.Rows = append(t.Rows, row)
	t.Cols = append(t.Cols, col)
	t.Dists = append(t.Dists, dist)
}

// Grow preallocates capacity for n additional entries.
func (t *Triplets) Grow(n int) {
	if n <= 0 {
		return
	}
	t.Rows = append(make([]int64, 0, len(t.Rows)+n), t.Rows...)
	t.Cols = append(make([]int64, 0, len(t.Cols)+n), t.Cols...)
	t.Dists = append(make([]float32, 0, len(t.Dists)+n), t.Dists...)
}

// Validate checks the structural invariants: equal slice lengths and
// non-decreasing row indices. It returns a typed error on the first
// violation and nil otherwise.
func (t Triplets) Validate() error {
	if len(t.Rows) != len(t.Dists) || len(t.Cols) != len(t.Dists) {
		return &ErrTripletMismatch{
			RowsLen:  len(t.Rows),
			ColsLen:  len(t.Cols),
			DistsLen: len(t.Dists),
		}
	}
	for i := 1; i < len(t.Rows); i++ {
		if t.Rows[i] < t.Rows[i-1] {
			return &ErrRowOrder{Index: i, Row: t.Rows[i], Prev: t.Rows[i-1]}
		}
	}
	return nil
}

// RowOffsets derives the start offset of each of n rows in a single linear
// scan. The returned slice has length n+1; row i occupies the half-open
// range [offsets[i], offsets[i+1]). Rows must already be validated as
// non-decreasing. Entries with row index >= n are not covered by the table.
func (t Triplets) RowOffsets(n int) []int {
	offsets := make([]int, n+1)
	idx := 0
	for i := 1; i < n; i++ {
		for idx < len(t.Rows) && t.Rows[idx] < int64(i) {
			idx++
		}
		offsets[i] = idx
	}
	offsets[n] = len(t.Rows)
	return offsets
}

// MaxRow returns the largest row index, or -1 when empty. With validated
// input this is just the last entry.
func (t Triplets) MaxRow() int64 {
	if len(t.Rows) == 0 {
		return -1
	}
	return t.Rows[len(t.Rows)-1]
}

// Concat joins parts into a single Triplets value in argument order. Parts
// are expected to hold disjoint, ascending row ranges so that the row-order
// invariant carries over to the result.
func Concat(parts ...Triplets) Triplets {
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	out := Triplets{
		Rows:  make([]int64, 0, total),
		Cols:  make([]int64, 0, total),
		Dists: make([]float32, 0, total),
	}
	for _, p := range parts {
		out.Rows = append(out.Rows, p.Rows...)
		out.Cols = append(out.Cols, p.Cols...)
		out.Dists = append(out.Dists, p.Dists...)
	}
	return out
}
