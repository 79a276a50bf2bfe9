// Package sparseknn extends sparse k-nearest-neighbor distance graphs
// incrementally.
//
// Given an existing sparse kNN graph over R reference points and dense
// distance blocks for Q newly arrived query points, Extend produces a sparse
// graph over all R+Q points without recomputing the reference graph. Each
// output row holds at least k distinct-valued nearest neighbors plus any
// candidates tying the k-th value within epsilon; self-loops are excluded.
// LowerRank reduces an over-wide sparse graph back to top-k-per-row form.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// rr: existing reference-reference kNN graph in COO form.
//	// qr: R x Q reference-to-query distances, qq: Q x Q query-to-query.
//	extended, err := sparseknn.Extend(ctx, rr, qq, qr, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Reduce a graph built at a higher search depth down to rank 2.
//	bounded, err := sparseknn.LowerRank(ctx, extended, n, 2)
//
// # Inputs
//
// This package does not compute distances. The sparse reference graph and
// the dense query blocks are supplied pre-scored; see the matrix package for
// the expected shapes. All inputs are treated as immutable and every
// operation returns a fresh matrix.
//
// # Concurrency
//
// Rows are independent. Both operations process contiguous row chunks across
// a configurable number of goroutines (WithNumWorkers) and concatenate the
// per-chunk results in order, so the row-ascending invariant of the COO form
// is preserved.
package sparseknn
