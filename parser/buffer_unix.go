//go:build unix

package parser

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// newFDBuffer backs the buffer with a raw POSIX file descriptor, read
// lazily in readChunk-sized chunks via a direct unix.Read syscall — the
// fd-backed source buffer variant of spec §4.A(i) is explicitly described
// in terms of a raw descriptor, not an io.Reader.
func newFDBuffer(fd int) *buffer {
	b := newBuffer()
	b.fillFn = func(min int) error {
		for len(b.data)-b.pos < min && !b.eof {
			chunk := make([]byte, readChunk)
			n, err := unix.Read(fd, chunk)
			if n > 0 {
				b.data = append(b.data, chunk[:n]...)
			}
			if err != nil {
				b.eof = true
				if err != io.EOF {
					b.ioErr = fmt.Errorf("%w: %v", ErrIO, err)
					return b.ioErr
				}
				return nil
			}
			if n == 0 {
				b.eof = true
				return nil
			}
		}
		return nil
	}
	return b
}
