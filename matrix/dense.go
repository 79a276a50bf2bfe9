package matrix

// Dense is a rectangular row-major float32 matrix with no missing entries.
type Dense struct {
	rows, cols int
	data       []float32
}

// NewDense creates a zero-filled rows x cols matrix.
func NewDense(rows, cols int) *Dense {
	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

// NewDenseFromSlice wraps data as a rows x cols matrix without copying.
// The slice length must be exactly rows*cols.
func NewDenseFromSlice(rows, cols int, data []float32) (*Dense, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, &ErrShapeMismatch{
			Block:    "dense",
			WantRows: rows,
			WantCols: cols,
			GotRows:  len(data),
			GotCols:  1,
		}
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// At returns the entry at (i, j).
func (d *Dense) At(i, j int) float32 {
	return d.data[i*d.cols+j]
}

// Set assigns the entry at (i, j).
func (d *Dense) Set(i, j int, v float32) {
	d.data[i*d.cols+j] = v
}

// Row returns row i as a slice borrowed from the backing array. The caller
// must not mutate it.
func (d *Dense) Row(i int) []float32 {
	return d.data[i*d.cols : (i+1)*d.cols]
}

// Col returns column j as a fresh slice. Columns are strided in the backing
// array, so unlike Row this allocates.
func (d *Dense) Col(j int) []float32 {
	out := make([]float32, d.rows)
	for i := 0; i < d.rows; i++ {
		out[i] = d.data[i*d.cols+j]
	}
	return out
}
