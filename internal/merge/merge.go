// Package merge implements the per-row candidate merge for extending a
// sparse kNN graph: two pre-sorted distance lists are walked in ascending
// order and entries are accepted until the row holds at least k distinct
// distance values, plus any candidates tying the last distinct value within
// epsilon.
package merge

import (
	"math"

	"github.com/hupe1980/sparseknn/internal/argsort"
)

// ColFunc maps an index into a candidate list to the global column index of
// that candidate.
type ColFunc func(idx int) int64

// EmitFunc receives every accepted candidate in acceptance order.
type EmitFunc func(col int64, dist float32)

// Cursor walks one candidate list in ascending distance order.
type Cursor struct {
	dists []float32
	order []int
	pos   int
	col   ColFunc
}

// NewCursor builds a cursor over dists. col translates positions in dists to
// global column indices. An empty or nil dists yields an exhausted cursor.
func NewCursor(dists []float32, col ColFunc) Cursor {
	return Cursor{
		dists: dists,
		order: argsort.Sort(dists, false),
		col:   col,
	}
}

func (c *Cursor) exhausted() bool {
	return c.pos >= len(c.order)
}

func (c *Cursor) head() float32 {
	return c.dists[c.order[c.pos]]
}

// take consumes the current head and returns its column and distance.
func (c *Cursor) take() (int64, float32) {
	idx := c.order[c.pos]
	c.pos++
	return c.col(idx), c.dists[idx]
}

// Merger holds the acceptance parameters shared by all rows.
type Merger struct {
	K       int
	Epsilon float32
}

// state of the per-row merge machine. Row starts in statePick, moves through
// an advance state to stateTieCheck for every drawn candidate, and halts in
// stateStopped.
type state int

const (
	statePick state = iota
	stateAdvanceCross
	stateAdvanceLocal
	stateTieCheck
	stateStopped
)

// Row merges the local and cross candidate lists for the given row and emits
// accepted entries. Candidates whose column equals row are skipped. When one
// list is exhausted the merge drains the other under the same stopping rule.
// Exact ties between the two heads prefer the cross candidate.
func (m Merger) Row(row int64, local, cross Cursor, emit EmitFunc) {
	var (
		unique     int
		lastUnique float32
		cand       int64
		candDist   float32
	)

	st := statePick
	for st != stateStopped {
		switch st {
		case statePick:
			switch {
			case cross.exhausted() && local.exhausted():
				st = stateStopped
			case local.exhausted():
				st = stateAdvanceCross
			case cross.exhausted():
				st = stateAdvanceLocal
			case cross.head() <= local.head():
				st = stateAdvanceCross
			default:
				st = stateAdvanceLocal
			}

		case stateAdvanceCross:
			cand, candDist = cross.take()
			st = stateTieCheck

		case stateAdvanceLocal:
			cand, candDist = local.take()
			st = stateTieCheck

		case stateTieCheck:
			if cand == row {
				// No self-loops.
				st = statePick
				continue
			}
			tie := unique > 0 && float32(math.Abs(float64(candDist-lastUnique))) < m.Epsilon
			if unique < m.K || tie {
				emit(cand, candDist)
				if !tie {
					unique++
					lastUnique = candDist
				}
				st = statePick
			} else {
				// Both lists are sorted, so nothing farther can qualify.
				st = stateStopped
			}
		}
	}
}
