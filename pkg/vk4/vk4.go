// Package vk4 implements read-only access to the VK4 container format
// produced by Keyence laser-scanning profilometry instruments.
//
// A VK4 file is a fixed-layout binary container: a 12-byte file header,
// an offset table addressing every section, and the sections themselves.
// Sections hold measurement metadata, RGB colour captures, light-intensity
// and height rasters, thumbnails and free-text fields. All multi-byte
// values are little-endian and all offsets are absolute from the start of
// the file, with zero meaning the section is not present.
//
// The package never writes or re-encodes VK4 data and returns samples as
// raw unscaled integers; unit conversion and rendering belong to callers.
package vk4

import "fmt"

const (
	// MagicVK4 is the signature at the start of every VK4 container.
	MagicVK4 = "VK4_"

	// offsetTableStart is where the section offset table begins, directly
	// after the magic, DLL version and file type fields.
	offsetTableStart = 12

	// headerSpan covers the file header plus the complete offset table.
	headerSpan = 84

	// PaletteSize is the byte length of the display palette carried by
	// palette-bearing raster sections: 256 entries of 3 channels.
	PaletteSize = 768
)

// FileHeader is the fixed region at the start of every container.
type FileHeader struct {
	Magic      [4]byte
	DLLVersion uint32
	FileType   uint32
}

// Section identifies one addressable data block in the container.
type Section uint32

const (
	SectionMeasConds Section = iota
	SectionColorPeak
	SectionColorLight
	SectionLight
	SectionHeight
	SectionColorPeakThumb
	SectionColorThumb
	SectionLightThumb
	SectionHeightThumb
	SectionAssemblyInfo
	SectionLineMeasure
	SectionLineThickness
	SectionStringData
	SectionReserved
)

func (s Section) String() string {
	switch s {
	case SectionMeasConds:
		return "MeasurementConditions"
	case SectionColorPeak:
		return "ColorPeak"
	case SectionColorLight:
		return "ColorLight"
	case SectionLight:
		return "Light"
	case SectionHeight:
		return "Height"
	case SectionColorPeakThumb:
		return "ColorPeakThumbnail"
	case SectionColorThumb:
		return "ColorThumbnail"
	case SectionLightThumb:
		return "LightThumbnail"
	case SectionHeightThumb:
		return "HeightThumbnail"
	case SectionAssemblyInfo:
		return "AssemblyInfo"
	case SectionLineMeasure:
		return "LineMeasure"
	case SectionLineThickness:
		return "LineThickness"
	case SectionStringData:
		return "StringData"
	case SectionReserved:
		return "Reserved"
	default:
		return fmt.Sprintf("section(%d)", uint32(s))
	}
}

// sections lists every addressable section in offset-table order.
var sections = []Section{
	SectionMeasConds,
	SectionColorPeak,
	SectionColorLight,
	SectionLight,
	SectionHeight,
	SectionColorPeakThumb,
	SectionColorThumb,
	SectionLightThumb,
	SectionHeightThumb,
	SectionAssemblyInfo,
	SectionLineMeasure,
	SectionLineThickness,
	SectionStringData,
	SectionReserved,
}

// Sections returns every addressable section in offset-table order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// IsRaster reports whether the section decodes as a single-channel
// palette-bearing raster layer.
func (s Section) IsRaster() bool {
	switch s {
	case SectionHeight, SectionLight, SectionHeightThumb, SectionLightThumb:
		return true
	}
	return false
}

// IsColor reports whether the section decodes as an interleaved RGB layer.
func (s Section) IsColor() bool {
	switch s {
	case SectionColorPeak, SectionColorLight, SectionColorPeakThumb, SectionColorThumb:
		return true
	}
	return false
}

// ParseSection maps an external kind name to its Section. It accepts the
// short lowercase names used by the CLI and HTTP surfaces.
func ParseSection(name string) (Section, bool) {
	switch name {
	case "height":
		return SectionHeight, true
	case "light":
		return SectionLight, true
	case "peak", "color_peak", "rgb_peak":
		return SectionColorPeak, true
	case "rgblight", "color_light", "rgb_light":
		return SectionColorLight, true
	case "height_thumb":
		return SectionHeightThumb, true
	case "light_thumb":
		return SectionLightThumb, true
	case "peak_thumb", "clr_peak_thumb":
		return SectionColorPeakThumb, true
	case "color_thumb", "clr_thumb":
		return SectionColorThumb, true
	}
	return 0, false
}
