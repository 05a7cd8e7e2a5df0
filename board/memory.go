package board

import (
	"io"
)

// Memory is RAM mapped at a physical base address.
type Memory struct {
	Base uint64
	Data []byte
}

var (
	_ io.ReaderAt = (*Memory)(nil)
	_ io.WriterAt = (*Memory)(nil)
)

// offset maps addr to an index into Data. Only an empty access may start at
// the end of memory.
func (mem *Memory) offset(addr int64, size int) (off int64, err error) {
	if addr < 0 || uint64(addr) < mem.Base {
		err = ErrAddress
		return
	}

	end := uint64(len(mem.Data))
	if at := uint64(addr) - mem.Base; at > end || (at == end && size > 0) {
		err = ErrAddress
		return
	}

	off = int64(uint64(addr) - mem.Base)

	return
}

// ReadAt reads from physical address addr.
func (mem *Memory) ReadAt(p []byte, addr int64) (n int, err error) {
	off, err := mem.offset(addr, len(p))
	if err != nil {
		return
	}

	n = copy(p, mem.Data[off:])
	if n < len(p) {
		err = io.EOF
	}

	return
}

// WriteAt writes to physical address addr.
func (mem *Memory) WriteAt(p []byte, addr int64) (n int, err error) {
	off, err := mem.offset(addr, len(p))
	if err != nil {
		return
	}

	n = copy(mem.Data[off:], p)
	if n < len(p) {
		err = io.ErrShortWrite
	}

	return
}
