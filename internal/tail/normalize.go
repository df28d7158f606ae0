package tail

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize exposes the line normalizer for collaborators that consume raw
// appended bytes directly, such as the live follower.
func Normalize(raw []byte) string { return normalize(raw) }

// NewMatcher returns a case-insensitive substring predicate for keyword
// using the same case folding as the engine. An empty keyword matches
// everything. The predicate is not safe for concurrent use.
func NewMatcher(keyword string) func(string) bool {
	m := newMatcher(keyword)
	return m.match
}

// normalize decodes a raw fragment into trimmed text. Invalid UTF-8
// sequences are dropped rather than surfaced; a fragment that trims to
// nothing yields the empty string and is discarded by the caller.
func normalize(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
}

// matcher is a case-insensitive substring test. The keyword is folded once
// up front; each candidate line is folded with the same caser so both sides
// compare under Unicode simple case folding. A matcher is bound to a single
// scan: cases.Caser is not safe for concurrent use.
type matcher struct {
	folded string
	caser  cases.Caser
}

func newMatcher(keyword string) *matcher {
	m := &matcher{caser: cases.Fold()}
	if keyword != "" {
		m.folded = m.caser.String(keyword)
	}
	return m
}

func (m *matcher) match(line string) bool {
	if m.folded == "" {
		return true
	}
	return strings.Contains(m.caser.String(line), m.folded)
}
