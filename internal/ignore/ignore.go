package ignore

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Set matches '/'-separated paths relative to the payload root against a
// list of glob patterns. A matched directory means its whole subtree is
// skipped by the walker.
type Set struct {
	globs    []glob.Glob
	patterns []string
}

// New compiles a Set from raw ignore entries. Entries are normalized with
// Normalize and empty entries are dropped. Patterns use '/' as the path
// separator, so an exact relative path is a valid pattern.
func New(entries []string) (*Set, error) {
	s := &Set{}
	for _, entry := range entries {
		p := Normalize(entry)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", entry, err)
		}
		s.globs = append(s.globs, g)
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Normalize converts backslashes to '/' and trims whitespace and surrounding
// slashes so entries compare cleanly against walk-relative paths.
func Normalize(entry string) string {
	p := strings.ReplaceAll(strings.TrimSpace(entry), `\`, "/")
	return strings.Trim(p, "/")
}

// Match returns true if the given '/'-separated relative path matches any
// ignore pattern.
func (s *Set) Match(rel string) bool {
	for _, g := range s.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Empty reports whether the set contains no patterns.
func (s *Set) Empty() bool {
	return len(s.patterns) == 0
}

// Patterns returns the normalized patterns, for logging.
func (s *Set) Patterns() []string {
	return s.patterns
}
