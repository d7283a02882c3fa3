package vk4

import "fmt"

const (
	// colorHeaderSpan covers the five u32 fields leading a colour section.
	colorHeaderSpan = 20

	// colorBitDepth is the only selector colour sections are known to
	// declare: three interleaved 8-bit channels per pixel.
	colorBitDepth = 24
)

// ColorLayer is a decoded RGB section: the peak or laser+colour capture,
// or one of the RGB thumbnails. Data holds Width*Height*3 channel bytes in
// row-major order, channels interleaved exactly as stored in the file.
type ColorLayer struct {
	Kind        Section
	Width       uint32
	Height      uint32
	BitDepth    uint32
	Compression uint32
	ByteSize    uint32
	Data        []byte
}

// decodeColor reads a colour section at the offset resolved for kind.
// Channel order is preserved from the source; nothing is reordered or
// converted.
func decodeColor(t OffsetTable, kind Section, cur cursor) (*ColorLayer, error) {
	if !kind.IsColor() {
		return nil, fmt.Errorf("vk4: %s is not a colour section", kind)
	}
	base := t.Offset(kind)
	if base == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionAbsent, kind)
	}

	hdr, err := cur.span(base, colorHeaderSpan)
	if err != nil {
		return nil, err
	}
	l := &ColorLayer{
		Kind:        kind,
		Width:       le.Uint32(hdr[0:4]),
		Height:      le.Uint32(hdr[4:8]),
		BitDepth:    le.Uint32(hdr[8:12]),
		Compression: le.Uint32(hdr[12:16]),
		ByteSize:    le.Uint32(hdr[16:20]),
	}
	if l.BitDepth != colorBitDepth {
		return nil, fmt.Errorf("%w: %s declares selector %d", ErrUnsupportedBitDepth, kind, l.BitDepth)
	}

	span := uint64(l.Width) * uint64(l.Height) * 3
	if span > uint64(len(cur.data)) {
		return nil, fmt.Errorf("%w: %s pixel buffer of %d bytes exceeds file size %d",
			ErrOutOfBounds, kind, span, len(cur.data))
	}
	l.Data, err = cur.bytes(base+colorHeaderSpan, uint32(span))
	if err != nil {
		return nil, err
	}
	return l, nil
}

// RGB returns the three channel bytes of pixel i.
func (l *ColorLayer) RGB(i int) (r, g, b uint8) {
	return l.Data[3*i], l.Data[3*i+1], l.Data[3*i+2]
}

// At returns the channel bytes of the pixel at column x, row y.
func (l *ColorLayer) At(x, y uint32) (r, g, b uint8) {
	return l.RGB(int(y*l.Width + x))
}
