package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a byte range [From, To) within a declaration source.
// Structs can embed Ranging to satisfy the [Ranger] interface.
//
// A Ranging with From == -1 means the position is unknown; declarations built
// programmatically, without any source text, use [NoRanging].
type Ranging struct {
	From int
	To   int
}

// NoRanging is the Ranging of values that have no source position.
var NoRanging = Ranging{-1, -1}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Known reports whether the range refers to an actual position.
func (r Ranging) Known() bool { return r.From >= 0 }

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
