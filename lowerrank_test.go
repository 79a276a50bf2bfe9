package sparseknn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sparseknn/matrix"
)

func TestLowerRank(t *testing.T) {
	ctx := context.Background()

	t.Run("TruncatesToK", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 0, 1, 1},
			Cols:  []int64{1, 2, 3, 0, 2},
			Dists: []float32{0.3, 0.1, 0.2, 0.4, 0.1},
		}

		out, err := LowerRank(ctx, rr, 4, 2)
		require.NoError(t, err)

		assert.Equal(t, []int64{0, 0, 1, 1}, out.Rows)
		assert.Equal(t, []int64{2, 3, 0, 2}, out.Cols)
		assert.Equal(t, []float32{0.1, 0.2, 0.4, 0.1}, out.Dists)
	})

	t.Run("IdempotentOnBoundedInput", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 1, 2},
			Cols:  []int64{2, 1, 0, 1},
			Dists: []float32{0.3, 0.1, 0.1, 0.2},
		}

		out, err := LowerRank(ctx, rr, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, rr, out)

		again, err := LowerRank(ctx, out, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})

	t.Run("BoundaryTiesKept", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 0, 0},
			Cols:  []int64{1, 2, 3, 4},
			Dists: []float32{0.1, 0.2, 0.205, 0.4},
		}

		out, err := LowerRank(ctx, rr, 5, 2, WithEpsilon(0.01))
		require.NoError(t, err)

		// 0.205 ties the k-th value 0.2 and stays; 0.4 is cut.
		assert.Equal(t, []int64{1, 2, 3}, out.Cols)
	})

	t.Run("SelfLoopsDropped", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0, 0},
			Cols:  []int64{0, 1},
			Dists: []float32{0, 0.1},
		}

		out, err := LowerRank(ctx, rr, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, out.Cols)
	})

	t.Run("ShortRowsPropagate", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0},
			Cols:  []int64{1},
			Dists: []float32{0.1},
		}

		out, err := LowerRank(ctx, rr, 3, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Len())
	})

	t.Run("UniqueDistanceRank", func(t *testing.T) {
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 0, 0},
			Cols:  []int64{1, 2, 3, 4},
			Dists: []float32{0.1, 0.1, 0.3, 0.5},
		}

		// Entry rank: k=2 keeps the two smallest entries only.
		out, err := LowerRank(ctx, rr, 5, 2, WithEpsilon(0.01))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, out.Cols)

		// Distinct-value rank: the duplicate 0.1 counts once, so 0.3
		// still makes the cut.
		out, err = LowerRank(ctx, rr, 5, 2, WithEpsilon(0.01), WithUniqueDistanceRank())
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, out.Cols)
	})

	t.Run("ReciprocalOnly", func(t *testing.T) {
		// (0,2) has no reverse edge and is filtered before ranking.
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 1, 2},
			Cols:  []int64{1, 2, 0, 1},
			Dists: []float32{0.3, 0.1, 0.3, 0.2},
		}

		out, err := LowerRank(ctx, rr, 3, 1, WithReciprocalOnly())
		require.NoError(t, err)

		assert.Equal(t, []int64{0, 1}, out.Rows)
		assert.Equal(t, []int64{1, 0}, out.Cols)
	})

	t.Run("RowOrderPreserved", func(t *testing.T) {
		// Kept entries keep their original within-row order even when it
		// is not ascending by distance.
		rr := matrix.Triplets{
			Rows:  []int64{0, 0, 0},
			Cols:  []int64{3, 1, 2},
			Dists: []float32{0.3, 0.1, 0.5},
		}

		out, err := LowerRank(ctx, rr, 4, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1}, out.Cols)
		assert.Equal(t, []float32{0.3, 0.1}, out.Dists)
	})

	t.Run("ParallelMatchesSerial", func(t *testing.T) {
		rr, qq, qr := buildFixture(t, 5, 3, 11)
		extended, err := Extend(ctx, rr, qq, qr, 4)
		require.NoError(t, err)

		serial, err := LowerRank(ctx, extended, 8, 2, WithNumWorkers(1))
		require.NoError(t, err)
		parallel, err := LowerRank(ctx, extended, 8, 2, WithNumWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, serial, parallel)
		require.NoError(t, serial.Validate())
	})
}

func TestLowerRankValidation(t *testing.T) {
	ctx := context.Background()

	rr := matrix.Triplets{
		Rows:  []int64{0, 1},
		Cols:  []int64{1, 0},
		Dists: []float32{0.1, 0.1},
	}

	t.Run("InvalidK", func(t *testing.T) {
		_, err := LowerRank(ctx, rr, 2, 0)
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("RowBeyondCount", func(t *testing.T) {
		_, err := LowerRank(ctx, rr, 1, 1)
		require.Error(t, err)
		assert.IsType(t, &matrix.ErrShapeMismatch{}, err)
	})

	t.Run("ColumnBeyondCount", func(t *testing.T) {
		bad := matrix.Triplets{
			Rows:  []int64{0},
			Cols:  []int64{7},
			Dists: []float32{0.1},
		}
		_, err := LowerRank(ctx, bad, 2, 1)
		require.Error(t, err)
		assert.IsType(t, &matrix.ErrShapeMismatch{}, err)
	})

	t.Run("Cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := LowerRank(cctx, rr, 2, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}
