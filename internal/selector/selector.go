// Package selector implements order-dependent weighted selection.
//
// Weights are compared against a draw in [0, DrawScale) by accumulating
// them in list order. When the weights under-sum the draw range, the last
// entry absorbs the remainder; no renormalization happens.
package selector

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/osse101/CaseSim_Go/internal/utils"
)

// DrawScale is the exclusive upper bound of a draw
const DrawScale = 100.0

var (
	ErrEmptyPool     = errors.New("selector: no entries")
	ErrInvalidWeight = errors.New("selector: invalid weight")
	ErrInvalidDraw   = errors.New("selector: invalid draw")
)

// Entry pairs a value with its drop weight
type Entry[T any] struct {
	Value  T
	Weight float64
}

// Table is a validated entry list with precomputed cumulative weights.
// It is read-only after construction and safe for concurrent use.
type Table[T any] struct {
	entries []Entry[T]
	// cumul and index only cover positive-weight entries so a zero
	// weight can never satisfy the comparison
	cumul []float64
	index []int
	total float64
}

// NewTable validates entries and builds the cumulative index
func NewTable[T any](entries []Entry[T]) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPool
	}

	t := &Table[T]{entries: entries}
	for i, e := range entries {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			return nil, fmt.Errorf("%w: entry %d has weight %v", ErrInvalidWeight, i, e.Weight)
		}
		if e.Weight == 0 {
			continue
		}
		t.total += e.Weight
		t.cumul = append(t.cumul, t.total)
		t.index = append(t.index, i)
	}
	return t, nil
}

// Pick returns the first entry whose cumulative weight is >= draw,
// or the last entry when the draw exceeds the total weight.
func (t *Table[T]) Pick(draw float64) (T, error) {
	i, err := t.PickIndex(draw)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.entries[i].Value, nil
}

// PickIndex is Pick returning the position of the chosen entry
func (t *Table[T]) PickIndex(draw float64) (int, error) {
	if math.IsNaN(draw) || draw < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDraw, draw)
	}

	pos := sort.SearchFloat64s(t.cumul, draw)
	if pos < len(t.cumul) {
		return t.index[pos], nil
	}
	return len(t.entries) - 1, nil
}

// TotalWeight is the sum of all configured weights
func (t *Table[T]) TotalWeight() float64 {
	return t.total
}

// Len returns the number of entries, zero weights included
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Odds returns the probability of each entry under a uniform draw in
// [0, DrawScale), including the fallback share of the last entry.
func (t *Table[T]) Odds() []float64 {
	odds := make([]float64, len(t.entries))
	var prev float64
	for k, c := range t.cumul {
		lo := math.Min(prev, DrawScale)
		hi := math.Min(c, DrawScale)
		odds[t.index[k]] = (hi - lo) / DrawScale
		prev = c
	}
	if t.total < DrawScale {
		odds[len(odds)-1] += (DrawScale - t.total) / DrawScale
	}
	return odds
}

// Pick is a convenience for one-off selections
func Pick[T any](entries []Entry[T], draw float64) (T, error) {
	t, err := NewTable(entries)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Pick(draw)
}

// Draw maps a unit source onto [0, DrawScale)
func Draw(src utils.RandomSource) float64 {
	return src.Float64() * DrawScale
}

// PickFrom draws from src and selects, returning the draw that was used
func PickFrom[T any](t *Table[T], src utils.RandomSource) (T, float64, error) {
	draw := Draw(src)
	v, err := t.Pick(draw)
	return v, draw, err
}

// Odds computes per-entry probabilities for an entry list
func Odds[T any](entries []Entry[T]) ([]float64, error) {
	t, err := NewTable(entries)
	if err != nil {
		return nil, err
	}
	return t.Odds(), nil
}
