package vk4

import "fmt"

// rasterHeaderSpan covers the seven u32 fields that lead every raster
// section, up to but not including the palette.
const rasterHeaderSpan = 28

// BitDepth is the per-sample width selector carried by raster section
// headers. Observed values are 8 for thumbnails, 16 for light intensity
// and 32 for height.
type BitDepth uint32

// SampleBytes resolves the selector to a byte width per sample. The second
// return is false for selectors the decoder does not recognize.
func (b BitDepth) SampleBytes() (uint32, bool) {
	switch b {
	case 8:
		return 1, true
	case 16:
		return 2, true
	case 32:
		return 4, true
	}
	return 0, false
}

// RasterLayer is a decoded single-channel section: height, light intensity
// or one of their thumbnails. Data holds Width*Height samples in row-major
// order with the width as the fast dimension, widened to uint32 but
// otherwise untouched. Palette is always exactly 768 bytes.
type RasterLayer struct {
	Kind            Section
	Width           uint32
	Height          uint32
	BitDepth        BitDepth
	Compression     uint32
	ByteSize        uint32
	PaletteRangeMin uint32
	PaletteRangeMax uint32
	Palette         []byte
	Data            []uint32
}

// decodeRaster reads a raster section at the offset resolved for kind:
// header fields, the 768-byte display palette, then the sample buffer
// whose width per sample follows the bit-depth selector.
func decodeRaster(t OffsetTable, kind Section, cur cursor) (*RasterLayer, error) {
	if !kind.IsRaster() {
		return nil, fmt.Errorf("vk4: %s is not a raster section", kind)
	}
	base := t.Offset(kind)
	if base == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionAbsent, kind)
	}

	hdr, err := cur.span(base, rasterHeaderSpan)
	if err != nil {
		return nil, err
	}
	l := &RasterLayer{
		Kind:            kind,
		Width:           le.Uint32(hdr[0:4]),
		Height:          le.Uint32(hdr[4:8]),
		BitDepth:        BitDepth(le.Uint32(hdr[8:12])),
		Compression:     le.Uint32(hdr[12:16]),
		ByteSize:        le.Uint32(hdr[16:20]),
		PaletteRangeMin: le.Uint32(hdr[20:24]),
		PaletteRangeMax: le.Uint32(hdr[24:28]),
	}

	sampleBytes, ok := l.BitDepth.SampleBytes()
	if !ok {
		return nil, fmt.Errorf("%w: %s declares selector %d", ErrUnsupportedBitDepth, kind, l.BitDepth)
	}

	l.Palette, err = cur.bytes(base+rasterHeaderSpan, PaletteSize)
	if err != nil {
		return nil, err
	}

	count := uint64(l.Width) * uint64(l.Height)
	span := count * uint64(sampleBytes)
	if span > uint64(len(cur.data)) {
		return nil, fmt.Errorf("%w: %s sample buffer of %d bytes exceeds file size %d",
			ErrOutOfBounds, kind, span, len(cur.data))
	}
	raw, err := cur.span(base+rasterHeaderSpan+PaletteSize, uint32(span))
	if err != nil {
		return nil, err
	}

	l.Data = make([]uint32, count)
	switch sampleBytes {
	case 1:
		for i := range l.Data {
			l.Data[i] = uint32(raw[i])
		}
	case 2:
		for i := range l.Data {
			l.Data[i] = uint32(le.Uint16(raw[2*i:]))
		}
	case 4:
		for i := range l.Data {
			l.Data[i] = le.Uint32(raw[4*i:])
		}
	}
	return l, nil
}

// At returns the sample at column x, row y.
func (l *RasterLayer) At(x, y uint32) uint32 {
	return l.Data[y*l.Width+x]
}

// PaletteEntry returns the i-th palette entry as RGB channel bytes.
func (l *RasterLayer) PaletteEntry(i int) (r, g, b uint8) {
	return l.Palette[3*i], l.Palette[3*i+1], l.Palette[3*i+2]
}
