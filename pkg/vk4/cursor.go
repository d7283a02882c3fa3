package vk4

import (
	"encoding/binary"
	"fmt"
)

var le = binary.LittleEndian

// cursor is a bounds-checked view over the raw container bytes. Every read
// takes an absolute offset and the cursor itself carries no position state,
// so one cursor can serve any number of concurrent decodes. All byte-range
// safety is enforced here; decoders never index the source directly.
type cursor struct {
	data []byte
}

// span returns a window into the source without copying. Callers must not
// hand the result to package users; records copy out via bytes.
func (c cursor) span(off, n uint32) ([]byte, error) {
	end := uint64(off) + uint64(n)
	if end > uint64(len(c.data)) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d, file is %d bytes",
			ErrOutOfBounds, n, off, len(c.data))
	}
	return c.data[off:end:end], nil
}

// bytes returns a fresh copy of n bytes at off.
func (c cursor) bytes(off, n uint32) ([]byte, error) {
	src, err := c.span(off, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, src)
	return out, nil
}

func (c cursor) u8(off uint32) (uint8, error) {
	b, err := c.span(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c cursor) u16(off uint32) (uint16, error) {
	b, err := c.span(off, 2)
	if err != nil {
		return 0, err
	}
	return le.Uint16(b), nil
}

func (c cursor) u32(off uint32) (uint32, error) {
	b, err := c.span(off, 4)
	if err != nil {
		return 0, err
	}
	return le.Uint32(b), nil
}

func (c cursor) i32(off uint32) (int32, error) {
	v, err := c.u32(off)
	return int32(v), err
}

// lengthPrefixed reads a u32 element count at off followed by
// count*elemSize payload bytes. It returns the payload and the total
// number of bytes consumed including the prefix.
func (c cursor) lengthPrefixed(off, elemSize uint32) ([]byte, uint32, error) {
	count, err := c.u32(off)
	if err != nil {
		return nil, 0, err
	}
	n := uint64(count) * uint64(elemSize)
	if n > uint64(len(c.data)) {
		return nil, 0, fmt.Errorf("%w: declared length %d at offset %d exceeds file size %d",
			ErrOutOfBounds, n, off, len(c.data))
	}
	payload, err := c.span(off+4, uint32(n))
	if err != nil {
		return nil, 0, err
	}
	return payload, 4 + uint32(n), nil
}
