// Package intern caches normalized option and command names so resolver
// tables and lookup queries that fold case or convert underscores don't
// re-allocate the same strings on every parse.
package intern

import (
	"strings"
	"sync"
)

// Folding selects the normalizations applied to a name before comparison.
// Both the stored name table and the query must use the same folding.
type Folding struct {
	Lower       bool // case-insensitive matching
	Underscores bool // treat '_' and '-' as the same rune
}

type key struct {
	name string
	fold Folding
}

// Cache is a thread-safe normalization cache. Entries are never evicted;
// the working set is bounded by the distinct names a process parses.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]string
}

// NewCache creates a cache with room for capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 64
	}
	return &Cache{entries: make(map[key]string, capacity)}
}

// Normalize returns the folded form of name, computing and caching it on
// first use.
func (c *Cache) Normalize(name string, fold Folding) string {
	if !fold.Lower && !fold.Underscores {
		return name
	}
	k := key{name: name, fold: fold}

	c.mu.RLock()
	if got, ok := c.entries[k]; ok {
		c.mu.RUnlock()
		return got
	}
	c.mu.RUnlock()

	folded := apply(name, fold)

	c.mu.Lock()
	defer c.mu.Unlock()
	if got, ok := c.entries[k]; ok {
		return got
	}
	c.entries[k] = folded
	return folded
}

// Len returns the number of cached entries, for monitoring and tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func apply(name string, fold Folding) string {
	out := name
	if fold.Lower {
		out = strings.ToLower(out)
	}
	if fold.Underscores {
		out = strings.ReplaceAll(out, "_", "-")
	}
	return out
}

// shared is the process-wide cache used by the convenience functions.
var shared = NewCache(128)

// Normalize folds name using the shared cache.
func Normalize(name string, fold Folding) string {
	return shared.Normalize(name, fold)
}

// Rune returns the canonical one-rune string for r without allocating for
// the ASCII names short options almost always use.
func Rune(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return asciiNames[r-'a']
	case r >= 'A' && r <= 'Z':
		return asciiNames[26+r-'A']
	case r >= '0' && r <= '9':
		return asciiNames[52+r-'0']
	}
	return string(r)
}

// a-z (0-25), A-Z (26-51), 0-9 (52-61)
var asciiNames = [62]string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}
