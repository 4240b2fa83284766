package suppress

import "strings"

// sourceCache lazily reads and splits source files via a caller-supplied
// ReadSource, caching the result across both suppression passes.
type sourceCache struct {
	read  ReadSource
	lined map[string][]string
	miss  map[string]bool
}

func newSourceCache(read ReadSource) *sourceCache {
	return &sourceCache{read: read, lined: make(map[string][]string), miss: make(map[string]bool)}
}

func (c *sourceCache) lines(file string) ([]string, bool) {
	if c.miss[file] {
		return nil, false
	}
	if lines, ok := c.lined[file]; ok {
		return lines, true
	}

	text, ok := c.read(file)
	if !ok {
		c.miss[file] = true
		return nil, false
	}

	lines := strings.Split(text, "\n")
	c.lined[file] = lines
	return lines, true
}
