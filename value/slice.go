package value

// SliceSpec is the argument a Slicer.Slice implementation receives for
// a colon-form subscript (`v[start:end:step]`); each component is nil
// when omitted, letting the callee apply Python-style defaulting and
// negative-index wraparound itself, since the wraparound base (the
// callee's own length) isn't known here.
type SliceSpec struct {
	Start, End, Step *int64
}

// IndexList is the argument for a gather subscript built from an
// iterable of individual indices (`v[(0, 2, 4)]`).
type IndexList []int64
