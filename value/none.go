package value

// None is the singleton result of a speculative miss: a namespace
// member access that cannot yet resolve (an early pass, or while
// constants are still being created) evaluates to None rather than
// failing outright, letting the surrounding expression propagate it
// and the pass loop try again next time around.
type noneType struct{}

func (noneType) Type() Type { return TNone }

func (noneType) Same(o Obj) bool { _, ok := o.(noneType); return ok }

func (noneType) Truth(TruthMode) (bool, error) { return false, nil }

func (noneType) Hash() uint32 { return 0 }

func (noneType) Repr(int) (string, error) { return "None", nil }

var noneValue = noneType{}

// None returns the canonical None singleton.
func None() Obj { return noneValue }
