package api

import "github.com/surfacelab/vk4go/pkg/vk4"

// InfoResponse summarises the opened container.
type InfoResponse struct {
	Source     string                 `json:"source"`
	DLLVersion uint32                 `json:"dll_version"`
	FileType   uint32                 `json:"file_type"`
	Title      string                 `json:"title,omitempty"`
	LensName   string                 `json:"lens_name,omitempty"`
	Conditions *MeasurementConditions `json:"measurement_conditions,omitempty"`
}

// MeasurementConditions is the wire form of the instrument metadata.
// Values are raw unscaled integers exactly as decoded.
type MeasurementConditions struct {
	Year              uint32 `json:"year"`
	Month             uint32 `json:"month"`
	Day               uint32 `json:"day"`
	Hour              uint32 `json:"hour"`
	Minute            uint32 `json:"minute"`
	Second            uint32 `json:"second"`
	DiffFromUTC       int32  `json:"diff_from_utc"`
	LensMagnification uint32 `json:"lens_magnification"`
	OpticalZoom       uint32 `json:"optical_zoom"`
	NDFilter          uint32 `json:"nd_filter"`
	XYLengthUnit      uint32 `json:"xy_length_unit"`
	ZLengthUnit       uint32 `json:"z_length_unit"`
	XLengthPerPixel   uint32 `json:"x_length_per_pixel"`
	YLengthPerPixel   uint32 `json:"y_length_per_pixel"`
	ZLengthPerDigit   uint32 `json:"z_length_per_digit"`
}

func conditionsDTO(m *vk4.MeasurementConditions) *MeasurementConditions {
	return &MeasurementConditions{
		Year:              m.Year,
		Month:             m.Month,
		Day:               m.Day,
		Hour:              m.Hour,
		Minute:            m.Minute,
		Second:            m.Second,
		DiffFromUTC:       m.DiffFromUTC,
		LensMagnification: m.LensMagnification,
		OpticalZoom:       m.OpticalZoom,
		NDFilter:          m.NDFilter,
		XYLengthUnit:      m.XYLengthUnit,
		ZLengthUnit:       m.ZLengthUnit,
		XLengthPerPixel:   m.XLengthPerPixel,
		YLengthPerPixel:   m.YLengthPerPixel,
		ZLengthPerDigit:   m.ZLengthPerDigit,
	}
}

// SectionInfo describes one entry of the container's offset table.
type SectionInfo struct {
	Kind    string `json:"kind"`
	Offset  uint32 `json:"offset"`
	Present bool   `json:"present"`
	Class   string `json:"class,omitempty"`
}

// RasterResponse is the JSON form of a decoded single-channel layer.
type RasterResponse struct {
	Kind     string   `json:"kind"`
	Width    uint32   `json:"width"`
	Height   uint32   `json:"height"`
	BitDepth uint32   `json:"bit_depth"`
	Palette  []byte   `json:"palette"` // 768 bytes, base64 on the wire
	Data     []uint32 `json:"data"`    // row-major, width fastest
}

// ColorResponse is the JSON form of a decoded RGB layer. Data holds
// width*height*3 interleaved channel bytes, base64 on the wire.
type ColorResponse struct {
	Kind   string `json:"kind"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Data   []byte `json:"data"`
}

// ResponseError is the error body for every failed request.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
