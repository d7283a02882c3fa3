package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/surfacelab/vk4go/pkg/vk4"
)

// Minimal baseline TIFF writer. The stdlib has no TIFF encoder and the
// profilometry data needs faithful unscaled sample writes, so the IFD is
// assembled by hand, little-endian throughout.

const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279
	tagSampleFormat    = 339

	typeShort = 3
	typeLong  = 4

	photometricBlackIsZero = 1
	photometricRGB         = 2
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value uint32
}

// WriteRasterTIFF writes a single-strip greyscale TIFF carrying the
// samples unscaled at the layer's native bit depth.
func WriteRasterTIFF(w io.Writer, l *vk4.RasterLayer) error {
	sampleBytes, ok := l.BitDepth.SampleBytes()
	if !ok {
		return fmt.Errorf("render: cannot write %s at bit depth %d", l.Kind, l.BitDepth)
	}

	strip := make([]byte, len(l.Data)*int(sampleBytes))
	for i, v := range l.Data {
		switch sampleBytes {
		case 1:
			strip[i] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(strip[2*i:], uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(strip[4*i:], v)
		}
	}

	entries := []ifdEntry{
		{tagImageWidth, typeLong, 1, l.Width},
		{tagImageLength, typeLong, 1, l.Height},
		{tagBitsPerSample, typeShort, 1, uint32(l.BitDepth)},
		{tagCompression, typeShort, 1, 1},
		{tagPhotometric, typeShort, 1, photometricBlackIsZero},
		{tagStripOffsets, typeLong, 1, 0}, // patched below
		{tagSamplesPerPixel, typeShort, 1, 1},
		{tagRowsPerStrip, typeLong, 1, l.Height},
		{tagStripByteCounts, typeLong, 1, uint32(len(strip))},
		{tagSampleFormat, typeShort, 1, 1}, // unsigned integer
	}
	return writeTIFF(w, entries, nil, strip)
}

// WriteColorTIFF writes a single-strip 8-bit RGB TIFF with the channel
// bytes exactly as decoded.
func WriteColorTIFF(w io.Writer, l *vk4.ColorLayer) error {
	// BitsPerSample for three channels does not fit the inline value
	// slot; it lives in the out-of-line area directly after the IFD.
	extra := make([]byte, 6)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(extra[2*i:], 8)
	}

	entries := []ifdEntry{
		{tagImageWidth, typeLong, 1, l.Width},
		{tagImageLength, typeLong, 1, l.Height},
		{tagBitsPerSample, typeShort, 3, 0}, // patched to the extra offset
		{tagCompression, typeShort, 1, 1},
		{tagPhotometric, typeShort, 1, photometricRGB},
		{tagStripOffsets, typeLong, 1, 0}, // patched below
		{tagSamplesPerPixel, typeShort, 1, 3},
		{tagRowsPerStrip, typeLong, 1, l.Height},
		{tagStripByteCounts, typeLong, 1, uint32(len(l.Data))},
	}
	return writeTIFF(w, entries, extra, l.Data)
}

// writeTIFF assembles header, IFD, out-of-line values and the strip.
// Entries whose value needs an offset (zero StripOffsets, multi-count
// BitsPerSample) are patched here once the layout is known.
func writeTIFF(w io.Writer, entries []ifdEntry, extra, strip []byte) error {
	ifdLen := 2 + 12*len(entries) + 4
	extraStart := uint32(8 + ifdLen)
	stripStart := extraStart + uint32(len(extra))

	for i := range entries {
		switch entries[i].tag {
		case tagStripOffsets:
			entries[i].value = stripStart
		case tagBitsPerSample:
			if entries[i].count > 1 {
				entries[i].value = extraStart
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(8))

	binary.Write(&buf, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&buf, binary.LittleEndian, e.tag)
		binary.Write(&buf, binary.LittleEndian, e.typ)
		binary.Write(&buf, binary.LittleEndian, e.count)
		value := e.value
		if e.typ == typeShort && e.count == 1 {
			// Inline SHORT values sit in the low bytes of the slot.
			var slot [4]byte
			binary.LittleEndian.PutUint16(slot[:], uint16(value))
			buf.Write(slot[:])
			continue
		}
		binary.Write(&buf, binary.LittleEndian, value)
	}
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // no next IFD

	buf.Write(extra)
	buf.Write(strip)

	_, err := w.Write(buf.Bytes())
	return err
}
