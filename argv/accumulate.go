package argv

import "strings"

// optionState tracks one option across a command level: the combined
// value so far and the provenance of every occurrence.
type optionState struct {
	spec        *OptionSpec
	value       Value
	occurrences []int
	invokedAs   string
	negated     bool
	set         bool
}

// record combines a fresh occurrence into the state per the option's
// accumulation mode. The duplicate check for Error mode lives here because
// it needs the occurrence history; everything else is pure combination.
func (st *optionState) record(incoming Value, index int, invokedAs string, negated bool) *ParseError {
	st.occurrences = append(st.occurrences, index)
	st.invokedAs = invokedAs
	st.negated = negated

	if !st.set {
		st.value = firstOccurrence(incoming, st.spec.mode)
		st.set = true
		return nil
	}

	if st.spec.mode == AccumulateError {
		occ := make([]int, len(st.occurrences))
		copy(occ, st.occurrences)
		return &ParseError{
			Type:        ErrorTypeDuplicateOption,
			Index:       index,
			Option:      st.spec.name,
			Occurrences: occ,
		}
	}

	st.value = combine(st.value, incoming, st.spec.mode, st.spec.merge)
	return nil
}

// firstOccurrence shapes the initial value: Count mode starts from the
// truthiness of the occurrence, every other mode stores it verbatim.
func firstOccurrence(incoming Value, mode Accumulation) Value {
	if mode == AccumulateCount {
		return countValue(incoming.count)
	}
	return incoming
}

// combine folds a repeated occurrence into the existing value. The mode
// set is closed; Error mode never reaches here.
func combine(existing, incoming Value, mode Accumulation, strategy MergeStrategy) Value {
	switch mode {
	case AccumulateFirst:
		return existing
	case AccumulateLast:
		return incoming
	case AccumulateCount:
		return countValue(existing.count + incoming.count)
	case AccumulateAppend:
		return listValue([]Value{existing, incoming})
	case AccumulateExtend:
		return extendValues(existing, incoming)
	case AccumulateMerge:
		return mergeDicts(existing, incoming, strategy)
	default:
		return incoming
	}
}

// extendValues flattens both sides into one flat sequence of scalars.
func extendValues(existing, incoming Value) Value {
	flat := append(existing.Flatten(), incoming.Flatten()...)
	items := make([]Value, len(flat))
	for i, s := range flat {
		items[i] = scalarValue(s)
	}
	return listValue(items)
}

// mergeDicts merges two dict values. Shallow replaces top-level keys; Deep
// recurses into keys whose values are both dicts and replaces otherwise.
// With this core's opaque string values Deep degenerates to Shallow; the
// recursion serves the structured dict sub-parser extension point.
func mergeDicts(existing, incoming Value, strategy MergeStrategy) Value {
	if existing.kind != KindDict || incoming.kind != KindDict {
		return incoming
	}

	keys := make([]string, 0, len(existing.keys)+len(incoming.keys))
	entries := make(map[string]Value, len(existing.dict)+len(incoming.dict))
	for _, k := range existing.keys {
		keys = append(keys, k)
		entries[k] = existing.dict[k]
	}
	for _, k := range incoming.keys {
		old, exists := entries[k]
		if !exists {
			keys = append(keys, k)
			entries[k] = incoming.dict[k]
			continue
		}
		next := incoming.dict[k]
		if strategy == MergeDeep && old.kind == KindDict && next.kind == KindDict {
			entries[k] = mergeDicts(old, next, strategy)
		} else {
			entries[k] = next
		}
	}
	return dictValue(keys, entries)
}

// dictRun parses one consumed run of key=value tokens into a dict value.
// Only the top-level key is split; the value side stays an opaque string.
func dictRun(values []string, sep string) Value {
	keys := make([]string, 0, len(values))
	entries := make(map[string]Value, len(values))
	for _, raw := range values {
		key, val, _ := strings.Cut(raw, sep)
		if _, exists := entries[key]; !exists {
			keys = append(keys, key)
		}
		entries[key] = scalarValue(val)
	}
	return dictValue(keys, entries)
}
