// Package tail extracts the most recent lines of large append-only log
// files without reading the whole file.
//
// The engine reads fixed-size chunks backward from the end of the file,
// reassembles lines that span chunk boundaries through a carry buffer, and
// stops as soon as the requested number of matching lines has been found.
// Memory use is bounded by one chunk plus the longest line regardless of
// file size or the number of requested lines (streaming case).
//
// Two entry points share the same pipeline and contract:
//
//	r := tail.NewReader(tail.Options{})
//	lines, err := r.Tail("/var/log/syslog", tail.Query{N: 100, Keyword: "error"})
//
//	it, err := r.Stream("/var/log/syslog", tail.Query{N: 100})
//	defer it.Close()
//	for it.Next() {
//	    fmt.Println(it.Line())
//	}
//
// Lines are returned newest-first. Blank lines are discarded, invalid UTF-8
// sequences are dropped rather than reported, and keyword matching is
// case-insensitive using Unicode simple case folding.
package tail
