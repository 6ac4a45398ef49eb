package argv

// Unbounded marks an arity with no upper limit on the number of values.
const Unbounded = -1

// Arity bounds how many values a parameter consumes. Min is always >= 0;
// Max is either >= Min or Unbounded.
type Arity struct {
	Min int
	Max int
}

// Exactly returns an arity that consumes exactly n values.
func Exactly(n int) Arity {
	return Arity{Min: n, Max: n}
}

// AtLeast returns an arity that consumes n or more values.
func AtLeast(n int) Arity {
	return Arity{Min: n, Max: Unbounded}
}

// Between returns an arity that consumes between min and max values.
func Between(min, max int) Arity {
	return Arity{Min: min, Max: max}
}

// IsUnbounded reports whether the arity has no upper limit.
func (a Arity) IsUnbounded() bool {
	return a.Max == Unbounded
}

// IsScalar reports whether the arity is exactly (1,1). Scalar arities
// collapse their single value instead of producing a one-element sequence.
func (a Arity) IsScalar() bool {
	return a.Min == 1 && a.Max == 1
}

func (a Arity) valid() bool {
	if a.Min < 0 {
		return false
	}
	if a.Max == Unbounded {
		return true
	}
	return a.Max >= a.Min
}

// cap returns the maximum count usable for slicing, treating Unbounded as n.
func (a Arity) cap(n int) int {
	if a.IsUnbounded() || a.Max > n {
		return n
	}
	return a.Max
}
