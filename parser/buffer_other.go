//go:build !unix

package parser

import "os"

// newFDBuffer backs the buffer with a raw file descriptor. Non-POSIX
// platforms have no equivalent of a bare unix.Read(fd, ...) syscall, so we
// fall back to wrapping the descriptor in an *os.File and reading through
// it; the (offset, line, column) bookkeeping is identical either way.
func newFDBuffer(fd int) *buffer {
	return newReaderBuffer(os.NewFile(uintptr(fd), "mrshgo-source"))
}
