package vk4

import "fmt"

// OffsetTable maps each section to its absolute byte offset in the file.
// A zero offset marks the section as not present; callers must check
// Present before dereferencing. The table is parsed once per file and
// never mutated afterwards.
type OffsetTable struct {
	MeasConds      uint32
	ColorPeak      uint32
	ColorLight     uint32
	Light          uint32
	Height         uint32
	ColorPeakThumb uint32
	ColorThumb     uint32
	LightThumb     uint32
	HeightThumb    uint32
	AssemblyInfo   uint32
	LineMeasure    uint32
	LineThickness  uint32
	StringData     uint32
	Reserved       uint32
}

// parseHeader reads the file header and offset table in one pass. It fails
// with ErrInvalidHeader on a signature mismatch and ErrOutOfBounds when the
// header region does not fit in the source.
func parseHeader(cur cursor) (FileHeader, OffsetTable, error) {
	var h FileHeader
	var t OffsetTable

	raw, err := cur.span(0, headerSpan)
	if err != nil {
		return h, t, err
	}

	copy(h.Magic[:], raw[0:4])
	if string(h.Magic[:]) != MagicVK4 {
		return h, t, fmt.Errorf("%w: magic %q", ErrInvalidHeader, raw[0:4])
	}
	h.DLLVersion = le.Uint32(raw[4:8])
	h.FileType = le.Uint32(raw[8:12])

	off := uint32(offsetTableStart)
	next := func() uint32 {
		v := le.Uint32(raw[off : off+4])
		off += 4
		return v
	}

	t.MeasConds = next()
	t.ColorPeak = next()
	t.ColorLight = next()
	t.Light = next()
	off += 8 // slots for the second and third light layers, unused here
	t.Height = next()
	off += 8 // slots for the second and third height layers, unused here
	t.ColorPeakThumb = next()
	t.ColorThumb = next()
	t.LightThumb = next()
	t.HeightThumb = next()
	t.AssemblyInfo = next()
	t.LineMeasure = next()
	t.LineThickness = next()
	t.StringData = next()
	t.Reserved = next()

	for _, s := range sections {
		if o := t.Offset(s); o != 0 && uint64(o) >= uint64(len(cur.data)) {
			return h, t, fmt.Errorf("%w: %s offset %d beyond file size %d",
				ErrOutOfBounds, s, o, len(cur.data))
		}
	}
	return h, t, nil
}

// Offset returns the absolute byte offset of the given section, zero when
// the section is absent.
func (t OffsetTable) Offset(s Section) uint32 {
	switch s {
	case SectionMeasConds:
		return t.MeasConds
	case SectionColorPeak:
		return t.ColorPeak
	case SectionColorLight:
		return t.ColorLight
	case SectionLight:
		return t.Light
	case SectionHeight:
		return t.Height
	case SectionColorPeakThumb:
		return t.ColorPeakThumb
	case SectionColorThumb:
		return t.ColorThumb
	case SectionLightThumb:
		return t.LightThumb
	case SectionHeightThumb:
		return t.HeightThumb
	case SectionAssemblyInfo:
		return t.AssemblyInfo
	case SectionLineMeasure:
		return t.LineMeasure
	case SectionLineThickness:
		return t.LineThickness
	case SectionStringData:
		return t.StringData
	case SectionReserved:
		return t.Reserved
	default:
		return 0
	}
}

// Present reports whether the section carries data in this container.
func (t OffsetTable) Present(s Section) bool {
	return t.Offset(s) != 0
}

// unrecognized returns the sections whose on-disk layout is undocumented
// but whose offset is non-zero. Every observed file leaves these at zero;
// a non-zero value needs operator attention, not a guessed decoder.
func (t OffsetTable) unrecognized() []Section {
	var bad []Section
	for _, s := range []Section{SectionLineMeasure, SectionLineThickness, SectionReserved} {
		if t.Offset(s) != 0 {
			bad = append(bad, s)
		}
	}
	return bad
}
