package tail

import (
	"bytes"
	"io"
)

// scanner walks a byte source backward in fixed-size chunks and yields raw
// line fragments in reverse file order. A fragment that spans two chunk
// reads is reassembled through the carry buffer before it is yielded, so
// chunk boundaries never split a line. The scanner never re-reads a byte
// range within one scan.
type scanner struct {
	src   io.ReaderAt
	pos   int64 // next read ends here; 0 means the source is exhausted
	chunk int
	carry []byte // unterminated prefix pending delimiter discovery
	done  bool
}

func newScanner(src io.ReaderAt, size int64, chunk int) *scanner {
	return &scanner{src: src, pos: size, chunk: chunk}
}

// next returns the next raw line fragment moving backward through the file.
// ok is false once every fragment, including the delimiter-less head of the
// file, has been yielded. Fragments alias the carry buffer and are only
// valid until the following call.
func (s *scanner) next() (frag []byte, ok bool, err error) {
	for {
		if i := bytes.LastIndexByte(s.carry, '\n'); i >= 0 {
			frag = s.carry[i+1:]
			s.carry = s.carry[:i]
			return frag, true, nil
		}
		if s.pos == 0 {
			// Terminal flush: whatever is left is the first line of the file.
			if s.done || len(s.carry) == 0 {
				s.done = true
				return nil, false, nil
			}
			s.done = true
			frag = s.carry
			s.carry = nil
			return frag, true, nil
		}
		readSize := int64(s.chunk)
		if readSize > s.pos {
			readSize = s.pos
		}
		s.pos -= readSize
		buf := make([]byte, readSize, readSize+int64(len(s.carry)))
		if _, err := s.src.ReadAt(buf, s.pos); err != nil {
			return nil, false, err
		}
		s.carry = append(buf, s.carry...)
	}
}
