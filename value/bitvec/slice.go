package bitvec

import (
	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
)

func resolveIndex(i, width int64) (int, bool) {
	if i < 0 {
		i += width
	}
	if i < 0 || i >= width {
		return 0, false
	}
	return int(i), true
}

// Slice implements value.Slicer for three subscript shapes: a single
// integer index (returns a width-1 vector), a colon range with
// optional start/end/step and Python-style negative-index wraparound
// (returns a gathered vector, width 0 when the range is empty - the
// canonical singleton, matching the source vector's own inversion so
// an empty slice of an inverted vector stays logically consistent),
// and an explicit index list (gather by position, always
// non-inverted since the result has no natural tail).
func (b *Bits) Slice(args any) (value.Obj, error) {
	switch a := args.(type) {
	case *bignum.Int:
		iv, err := a.Ival(64)
		if err != nil {
			return nil, err
		}
		idx, ok := resolveIndex(iv, int64(b.width))
		if !ok {
			return nil, value.ErrIndexRange
		}
		return Bit(bitAt(b, idx) == 1), nil

	case value.SliceSpec:
		return b.sliceRange(a)

	case value.IndexList:
		return b.gather(a)
	}
	return nil, value.ErrNotApplicable
}

func (b *Bits) sliceRange(spec value.SliceSpec) (*Bits, error) {
	width := int64(b.width)
	step := int64(1)
	if spec.Step != nil {
		step = *spec.Step
		if step == 0 {
			return nil, value.ErrIndexRange
		}
	}
	var start, end int64
	if step > 0 {
		start, end = 0, width
	} else {
		start, end = width-1, -1
	}
	if spec.Start != nil {
		start = normalizeBound(*spec.Start, width, step > 0)
	}
	if spec.End != nil {
		end = normalizeBound(*spec.End, width, step > 0)
	}

	var indices []int64
	if step > 0 {
		for i := start; i < end; i += step {
			indices = append(indices, i)
		}
	} else {
		for i := start; i > end; i += step {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return Empty(b.inv), nil
	}
	out := make([]uint32, (len(indices)+31)/32)
	for k, idx := range indices {
		if idx < 0 || idx >= width {
			continue
		}
		if bitAt(b, int(idx)) == 1 {
			setBit(out, k)
		}
	}
	return normalizeBits(len(indices), false, out), nil
}

func normalizeBound(v, width int64, forward bool) int64 {
	if v < 0 {
		v += width
	}
	if forward {
		if v < 0 {
			v = 0
		}
		if v > width {
			v = width
		}
	} else {
		if v < -1 {
			v = -1
		}
		if v >= width {
			v = width - 1
		}
	}
	return v
}

func (b *Bits) gather(list value.IndexList) (*Bits, error) {
	if len(list) == 0 {
		return Empty(false), nil
	}
	out := make([]uint32, (len(list)+31)/32)
	width := int64(b.width)
	for k, i := range list {
		idx, ok := resolveIndex(i, width)
		if !ok {
			return nil, value.ErrIndexRange
		}
		if bitAt(b, idx) == 1 {
			setBit(out, k)
		}
	}
	return normalizeBits(len(list), false, out), nil
}

// Len implements value.Lener.
func (b *Bits) Len() (int, error) { return b.width, nil }
