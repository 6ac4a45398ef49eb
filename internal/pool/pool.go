// Package pool recycles the per-level scratch buffers the parser engine
// fills while classifying tokens. Results copy what they keep, so pooled
// memory never escapes a parse call.
package pool

import "sync"

// Level is the mutable scratch state for one command level of a parse:
// collected positional tokens with their source indices, and trailing
// tokens. It is owned by exactly one parse call at a time.
type Level struct {
	Positionals []string
	Indices     []int
	Trailing    []string
}

var levelPool = sync.Pool{
	New: func() any {
		return &Level{
			Positionals: make([]string, 0, 16),
			Indices:     make([]int, 0, 16),
			Trailing:    make([]string, 0, 8),
		}
	},
}

// GetLevel returns an empty scratch level.
func GetLevel() *Level {
	return levelPool.Get().(*Level)
}

// PutLevel resets and recycles a scratch level. The caller must not
// retain any of its slices.
func PutLevel(l *Level) {
	if l == nil {
		return
	}
	l.Positionals = l.Positionals[:0]
	l.Indices = l.Indices[:0]
	l.Trailing = l.Trailing[:0]
	levelPool.Put(l)
}

// AddPositional records one positional token and the index it came from.
func (l *Level) AddPositional(tok string, index int) {
	l.Positionals = append(l.Positionals, tok)
	l.Indices = append(l.Indices, index)
}

// CopyStrings returns an owned copy of src, or nil for an empty slice.
// Freezing a level into an immutable result goes through here.
func CopyStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
