package grammar

import (
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// DefaultCacheSize is the number of inputs a [Cache] holds before it is
// reset.
const DefaultCacheSize = 1024

// Cache memoizes [Grammar.Parse] results keyed by input text.
//
// Chat traffic repeats the same handful of commands, so parsing each
// distinct line once is enough. Every call still receives its own deep
// copy of the Result. A Cache is safe for concurrent use.
type Cache struct {
	grammar *Grammar
	size    int
	count   atomic.Int64
	entries sync.Map // uint64 -> cacheEntry
}

// cacheEntry keeps the input so a hash collision cannot return another
// line's Result.
type cacheEntry struct {
	text   string
	result Result
}

// NewCache returns a Cache for g holding at most size inputs.
// A size less than 1 selects [DefaultCacheSize].
func NewCache(g *Grammar, size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}

	return &Cache{grammar: g, size: size}
}

// Parse returns the Result of g.Parse(text), parsing text only if it is not
// already cached.
func (c *Cache) Parse(text string) Result {
	key := xxh3.HashString(text)

	if v, ok := c.entries.Load(key); ok {
		if e, ok := v.(cacheEntry); ok && e.text == text {
			return e.result.Clone()
		}
	}

	result := c.grammar.Parse(text)

	if c.count.Add(1) > int64(c.size) {
		c.Reset()
		c.count.Add(1)
	}

	c.entries.Store(key, cacheEntry{text: text, result: result})

	return result.Clone()
}

// Len returns the approximate number of cached inputs.
func (c *Cache) Len() int {
	return int(c.count.Load())
}

// Reset removes every cached input.
func (c *Cache) Reset() {
	c.entries.Clear()
	c.count.Store(0)
}
