package sparseknn

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sparseknn/internal/merge"
	"github.com/hupe1980/sparseknn/matrix"
)

// Extend merges Q newly scored query points into an existing sparse kNN
// graph over R reference points and returns a sparse graph covering rows
// 0..R+Q-1.
//
// rr is the existing reference-reference graph in COO form. qr holds the
// R x Q reference-to-query distances (R and Q are taken from its shape) and
// qq the Q x Q query-to-query distances. Each output row keeps the k nearest
// distinct-valued neighbors of that point across the combined set, plus any
// candidate tying the last kept distinct value within epsilon; self-loops
// are excluded. Rows with fewer than k available neighbors come back short
// rather than failing.
//
// Inputs are never mutated. Validation failures return before any row is
// processed; ctx cancellation aborts between rows.
func Extend(ctx context.Context, rr matrix.Triplets, qq, qr *matrix.Dense, k int, optFns ...Option) (matrix.Triplets, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	out, err := extend(ctx, rr, qq, qr, k, opts)

	if opts.Logger != nil {
		opts.Logger.LogExtend(ctx, qr.Rows()+qr.Cols(), out.Len(), time.Since(start), err)
	}
	if opts.Metrics != nil {
		opts.Metrics.RecordExtend(qr.Rows()+qr.Cols(), out.Len(), time.Since(start), err)
	}
	return out, err
}

func extend(ctx context.Context, rr matrix.Triplets, qq, qr *matrix.Dense, k int, opts Options) (matrix.Triplets, error) {
	if k < 1 {
		return matrix.Triplets{}, ErrInvalidK
	}
	if err := opts.validate(); err != nil {
		return matrix.Triplets{}, err
	}
	if err := rr.Validate(); err != nil {
		return matrix.Triplets{}, err
	}

	nr := qr.Rows()
	nq := qr.Cols()
	if qq.Rows() != nq || qq.Cols() != nq {
		return matrix.Triplets{}, &matrix.ErrShapeMismatch{
			Block:    "query-query",
			WantRows: nq,
			WantCols: nq,
			GotRows:  qq.Rows(),
			GotCols:  qq.Cols(),
		}
	}
	if maxRow := rr.MaxRow(); maxRow >= int64(nr) {
		return matrix.Triplets{}, &matrix.ErrShapeMismatch{
			Block:    "reference-reference",
			WantRows: nr,
			WantCols: nr,
			GotRows:  int(maxRow) + 1,
			GotCols:  nr,
		}
	}

	offsets := rr.RowOffsets(nr)
	total := nr + nq
	m := merge.Merger{K: k, Epsilon: opts.Epsilon}

	buffers, err := forEachRowChunk(ctx, total, opts.workers(), k, func(out *matrix.Triplets, i int) {
		local, cross := rowCursors(rr, qq, qr, offsets, nr, i)
		m.Row(int64(i), local, cross, func(col int64, dist float32) {
			if opts.DistanceFloor && dist < opts.Epsilon {
				dist = opts.Epsilon
			}
			out.Append(int64(i), col, dist)
		})
	})
	if err != nil {
		return matrix.Triplets{}, err
	}
	return matrix.Concat(buffers...), nil
}

// rowCursors assembles the two candidate cursors for output row i. For a
// reference row the local list is the sparse row slice of rr and the cross
// list is row i of qr; for a query row the local list is column i-R of qr
// and the cross list is row i-R of qq. Cross columns live in the query index
// space and are shifted by +R.
func rowCursors(rr matrix.Triplets, qq, qr *matrix.Dense, offsets []int, nr, i int) (local, cross merge.Cursor) {
	if i < nr {
		rowStart := offsets[i]
		local = merge.NewCursor(rr.Dists[rowStart:offsets[i+1]], func(idx int) int64 {
			return rr.Cols[rowStart+idx]
		})
		cross = merge.NewCursor(qr.Row(i), func(idx int) int64 {
			return int64(idx + nr)
		})
		return local, cross
	}

	q := i - nr
	local = merge.NewCursor(qr.Col(q), func(idx int) int64 {
		return int64(idx)
	})
	cross = merge.NewCursor(qq.Row(q), func(idx int) int64 {
		return int64(idx + nr)
	})
	return local, cross
}

// forEachRowChunk runs fn for every row in 0..total-1, partitioned into
// contiguous chunks across at most workers goroutines. Each chunk appends to
// a private buffer; the returned buffers are in chunk order so concatenation
// preserves the row-ascending invariant. k sizes the per-buffer
// preallocation.
func forEachRowChunk(ctx context.Context, total, workers, k int, fn func(out *matrix.Triplets, i int)) ([]matrix.Triplets, error) {
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		out := matrix.Triplets{}
		out.Grow(k * total)
		for i := 0; i < total; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fn(&out, i)
		}
		return []matrix.Triplets{out}, nil
	}

	buffers := make([]matrix.Triplets, workers)
	chunk := (total + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, total)
		buf := &buffers[w]
		g.Go(func() error {
			buf.Grow(k * (hi - lo))
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(buf, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buffers, nil
}
