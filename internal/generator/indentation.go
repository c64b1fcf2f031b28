package generator

import (
	"strings"

	"github.com/toyz/mockly/internal/utils"
)

// DefaultIndentWidth is the number of spaces per indentation level
const DefaultIndentWidth = 4

// IndentationCache memoizes whitespace strings by column count. It is safe
// to share between builders running on different goroutines.
type IndentationCache struct {
	cache *utils.Cache[int, string]
}

// NewIndentationCache creates an empty cache
func NewIndentationCache() *IndentationCache {
	return &IndentationCache{cache: utils.NewCache[int, string]()}
}

// Get returns a string of columns spaces
func (c *IndentationCache) Get(columns int) string {
	if columns <= 0 {
		return ""
	}
	return c.cache.GetOrCreate(columns, func(n int) string {
		return strings.Repeat(" ", n)
	})
}

// Size returns how many distinct widths have been materialized
func (c *IndentationCache) Size() int {
	return c.cache.Size()
}

// indentBlock rewrites template output for the given level: each leading tab
// becomes one level of width columns on top of level. Empty lines stay empty.
func indentBlock(text string, level, width int, cache *IndentationCache) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	for len(text) > 0 {
		line := text
		rest := ""
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, rest = text[:i+1], text[i+1:]
		}
		text = rest

		if line == "\n" {
			b.WriteString(line)
			continue
		}
		tabs := 0
		for tabs < len(line) && line[tabs] == '\t' {
			tabs++
		}
		b.WriteString(cache.Get((level + tabs) * width))
		b.WriteString(line[tabs:])
	}
	return b.String()
}
