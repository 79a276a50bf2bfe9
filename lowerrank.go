package sparseknn

import (
	"context"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/sparseknn/internal/argsort"
	"github.com/hupe1980/sparseknn/matrix"
)

// LowerRank reduces each row of an n x n sparse distance graph to its top-k
// entries. Entries tying the k-th kept value within epsilon are retained in
// full, symmetric with the admission rule of Extend, so rows with boundary
// ties may legitimately stay wider than k. Kept entries preserve their
// original within-row order, which makes the operation idempotent on
// already-bounded, tie-free input.
//
// WithUniqueDistanceRank counts distinct distance values instead of entries
// when deciding where rank k is reached. WithReciprocalOnly first drops
// entries whose reverse edge is absent. Self-loops are always dropped.
func LowerRank(ctx context.Context, rr matrix.Triplets, n, k int, optFns ...Option) (matrix.Triplets, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	out, err := lowerRank(ctx, rr, n, k, opts)

	kept, dropped := out.Len(), rr.Len()-out.Len()
	if err != nil {
		kept, dropped = 0, 0
	}
	if opts.Logger != nil {
		opts.Logger.LogLowerRank(ctx, n, kept, dropped, time.Since(start), err)
	}
	if opts.Metrics != nil {
		opts.Metrics.RecordLowerRank(n, kept, dropped, time.Since(start), err)
	}
	return out, err
}

func lowerRank(ctx context.Context, rr matrix.Triplets, n, k int, opts Options) (matrix.Triplets, error) {
	if k < 1 {
		return matrix.Triplets{}, ErrInvalidK
	}
	if err := opts.validate(); err != nil {
		return matrix.Triplets{}, err
	}
	if err := rr.Validate(); err != nil {
		return matrix.Triplets{}, err
	}
	if maxRow := rr.MaxRow(); maxRow >= int64(n) {
		return matrix.Triplets{}, &matrix.ErrShapeMismatch{
			Block:    "reference-reference",
			WantRows: n,
			WantCols: n,
			GotRows:  int(maxRow) + 1,
			GotCols:  n,
		}
	}
	for _, col := range rr.Cols {
		if col < 0 || col >= int64(n) {
			return matrix.Triplets{}, &matrix.ErrShapeMismatch{
				Block:    "reference-reference",
				WantRows: n,
				WantCols: n,
				GotRows:  n,
				GotCols:  int(col) + 1,
			}
		}
	}

	var edges *roaring64.Bitmap
	if opts.ReciprocalOnly {
		edges = roaring64.New()
		for p := 0; p < rr.Len(); p++ {
			edges.Add(uint64(rr.Rows[p])*uint64(n) + uint64(rr.Cols[p]))
		}
	}

	offsets := rr.RowOffsets(n)

	buffers, err := forEachRowChunk(ctx, n, opts.workers(), k, func(out *matrix.Triplets, i int) {
		lowerRankRow(rr, offsets, edges, int64(i), n, k, opts, out)
	})
	if err != nil {
		return matrix.Triplets{}, err
	}
	return matrix.Concat(buffers...), nil
}

func lowerRankRow(rr matrix.Triplets, offsets []int, edges *roaring64.Bitmap, row int64, n, k int, opts Options, out *matrix.Triplets) {
	start, end := offsets[row], offsets[row+1]
	if start == end {
		return
	}

	// Candidate positions within the row, after self-loop and reciprocal
	// filtering.
	cand := make([]int, 0, end-start)
	dists := make([]float32, 0, end-start)
	for p := start; p < end; p++ {
		col := rr.Cols[p]
		if col == row {
			continue
		}
		if edges != nil && !edges.Contains(uint64(col)*uint64(n)+uint64(row)) {
			continue
		}
		cand = append(cand, p)
		dists = append(dists, rr.Dists[p])
	}
	if len(cand) == 0 {
		return
	}

	keep := make([]bool, len(cand))
	count := 0
	var boundary float32
	for _, c := range argsort.Sort(dists, false) {
		d := dists[c]
		if count < k {
			keep[c] = true
			tie := opts.UniqueDistanceRank && count > 0 && abs32(d-boundary) < opts.Epsilon
			if !tie {
				count++
				boundary = d
			}
			continue
		}
		if abs32(d-boundary) < opts.Epsilon {
			keep[c] = true
			continue
		}
		break
	}

	// Emit kept entries in their original within-row order.
	for c, p := range cand {
		if !keep[c] {
			continue
		}
		dist := rr.Dists[p]
		if opts.DistanceFloor && dist < opts.Epsilon {
			dist = opts.Epsilon
		}
		out.Append(row, rr.Cols[p], dist)
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
