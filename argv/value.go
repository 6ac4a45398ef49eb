package argv

// ValueKind discriminates the shape of a parsed value.
type ValueKind int

const (
	KindScalar ValueKind = iota // single string
	KindList                    // ordered sequence, possibly nested
	KindCount                   // occurrence count (Count-mode flags)
	KindDict                    // ordered key/value pairs (Dict options)
)

// Value is the tagged variant every parsed option and positional produces.
// Values are immutable once a parse returns; the zero Value is a scalar
// empty string.
type Value struct {
	kind  ValueKind
	str   string
	list  []Value
	count int
	keys  []string
	dict  map[string]Value
}

func scalarValue(s string) Value {
	return Value{kind: KindScalar, str: s}
}

func listValue(items []Value) Value {
	return Value{kind: KindList, list: items}
}

func countValue(n int) Value {
	return Value{kind: KindCount, count: n}
}

func dictValue(keys []string, entries map[string]Value) Value {
	return Value{kind: KindDict, keys: keys, dict: entries}
}

// Kind returns the shape of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Str returns the scalar string. For non-scalar values it returns "".
func (v Value) Str() string {
	return v.str
}

// Bool reports whether the value is the scalar "true". Flag occurrences
// store "true" ("false" when negated).
func (v Value) Bool() bool {
	return v.kind == KindScalar && v.str == "true"
}

// Count returns the occurrence count of a Count-mode value, or 0.
func (v Value) Count() int {
	return v.count
}

// Items returns the elements of a list value in order.
func (v Value) Items() []Value {
	return v.list
}

// Len returns the number of elements of a list or dict value. Scalars and
// counts have length 1 when set by a parse.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindDict:
		return len(v.keys)
	default:
		return 1
	}
}

// Keys returns the keys of a dict value in first-seen order.
func (v Value) Keys() []string {
	return v.keys
}

// Lookup returns the value stored under key in a dict value.
func (v Value) Lookup(key string) (Value, bool) {
	got, ok := v.dict[key]
	return got, ok
}

// Flatten returns every scalar reachable from the value, depth first.
// Scalars yield themselves, lists recurse, dicts yield their values and
// counts yield nothing.
func (v Value) Flatten() []string {
	switch v.kind {
	case KindScalar:
		return []string{v.str}
	case KindList:
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Flatten()...)
		}
		return out
	case KindDict:
		out := make([]string, 0, len(v.keys))
		for _, key := range v.keys {
			out = append(out, v.dict[key].Flatten()...)
		}
		return out
	default:
		return nil
	}
}

// runValue shapes one consumed run of tokens: scalar iff the arity is
// exactly (1,1), otherwise an ordered sequence.
func runValue(values []string, arity Arity) Value {
	if arity.IsScalar() && len(values) == 1 {
		return scalarValue(values[0])
	}
	items := make([]Value, len(values))
	for i, s := range values {
		items[i] = scalarValue(s)
	}
	return listValue(items)
}
