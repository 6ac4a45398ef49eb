package argv

// groupPositionals distributes the collected positional tokens over the
// positional specs, left to right, greedy with reservation: each spec
// takes as much as it can while leaving enough for the minimums of every
// later spec. indices carries the source token index of each collected
// token for error reporting.
func groupPositionals(specs []*PositionalSpec, toks []string, indices []int, total int) (map[string]Value, *ParseError) {
	mins := 0
	for _, spec := range specs {
		mins += spec.arity.Min
	}
	if len(toks) < mins {
		// Global precheck: the totals can never work out, fail before
		// any per-spec attribution.
		return nil, &ParseError{
			Type:  ErrorTypeInsufficientValues,
			Index: endIndex(indices, total),
		}
	}

	out := make(map[string]Value, len(specs))
	remaining := toks
	remainingIdx := indices
	laterMin := mins

	for _, spec := range specs {
		laterMin -= spec.arity.Min
		available := len(remaining) - laterMin
		take := available
		if !spec.arity.IsUnbounded() {
			take = spec.arity.cap(available)
		}
		if take < spec.arity.Min {
			return nil, &ParseError{
				Type:       ErrorTypeInsufficientValues,
				Index:      endIndex(indices, total),
				Positional: spec.name,
			}
		}
		out[spec.name] = runValue(remaining[:take], spec.arity)
		remaining = remaining[take:]
		remainingIdx = remainingIdx[take:]
	}

	if len(remaining) > 0 {
		return nil, &ParseError{
			Type:  ErrorTypeUnexpectedArgument,
			Index: remainingIdx[0],
		}
	}
	return out, nil
}

// endIndex points an insufficiency error at where input ran out: one past
// the last collected positional, or the end of the vector.
func endIndex(indices []int, total int) int {
	if len(indices) > 0 {
		return indices[len(indices)-1]
	}
	return total
}
