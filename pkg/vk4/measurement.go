package vk4

import "fmt"

// measCondsSpan is the fixed byte length of the measurement conditions
// record. The record is all 4-byte fields, a handful of them reserved.
const measCondsSpan = 300

// MeasurementConditions is the instrument configuration recorded at
// capture time. Every field is stored as a raw unscaled integer exactly as
// found in the file; XYDecimalPlace and friends describe how the
// instrument intends the scale fields to be interpreted.
type MeasurementConditions struct {
	Size        uint32
	Year        uint32
	Month       uint32
	Day         uint32
	Hour        uint32
	Minute      uint32
	Second      uint32
	DiffFromUTC int32

	ImageAttributes    uint32
	UserInterfaceMode  uint32
	ColorCompositeMode uint32
	LayerCount         uint32
	RunMode            uint32
	PeakMode           uint32
	SharpeningLevel    uint32
	Speed              uint32
	Distance           uint32
	Pitch              uint32
	OpticalZoom        uint32
	NumberOfLines      uint32
	Line0Position      uint32

	LensMagnification uint32
	PMTGainMode       uint32
	PMTGain           uint32
	PMTOffset         uint32
	NDFilter          uint32

	PersistCount      uint32
	ShutterSpeedMode  uint32
	ShutterSpeed      uint32
	WhiteBalanceMode  uint32
	WhiteBalanceRed   uint32
	WhiteBalanceBlue  uint32
	CameraGain        uint32
	PlaneCompensation uint32

	XYLengthUnit    uint32
	ZLengthUnit     uint32
	XYDecimalPlace  uint32
	ZDecimalPlace   uint32
	XLengthPerPixel uint32
	YLengthPerPixel uint32
	ZLengthPerDigit uint32

	LightFilterType uint32

	GammaReverse      uint32
	Gamma             uint32
	GammaOffset       uint32
	CCDBWOffset       uint32
	NumericalAperture uint32
	HeadType          uint32
	PMTGain2          uint32
	OmitColorImage    uint32
	LensID            uint32

	LightLUTIn  [5]uint32
	LightLUTOut [5]uint32

	UpperPosition           uint32
	LowerPosition           uint32
	LightEffectiveBitDepth  uint32
	HeightEffectiveBitDepth uint32
}

// decodeMeasurementConditions reads the fixed-size record at the
// meas_conds offset. The record has no variable-length content, so a span
// running past the file end is ErrOutOfBounds, never a truncated record.
func decodeMeasurementConditions(t OffsetTable, cur cursor) (*MeasurementConditions, error) {
	base := t.MeasConds
	if base == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionAbsent, SectionMeasConds)
	}
	raw, err := cur.span(base, measCondsSpan)
	if err != nil {
		return nil, err
	}

	off := 0
	next := func() uint32 {
		v := le.Uint32(raw[off : off+4])
		off += 4
		return v
	}
	skip := func(n int) { off += n }

	var m MeasurementConditions
	m.Size = next()
	m.Year = next()
	m.Month = next()
	m.Day = next()
	m.Hour = next()
	m.Minute = next()
	m.Second = next()
	m.DiffFromUTC = int32(next())
	m.ImageAttributes = next()
	m.UserInterfaceMode = next()
	m.ColorCompositeMode = next()
	m.LayerCount = next()
	m.RunMode = next()
	m.PeakMode = next()
	m.SharpeningLevel = next()
	m.Speed = next()
	m.Distance = next()
	m.Pitch = next()
	m.OpticalZoom = next()
	m.NumberOfLines = next()
	m.Line0Position = next()
	skip(12)
	m.LensMagnification = next()
	m.PMTGainMode = next()
	m.PMTGain = next()
	m.PMTOffset = next()
	m.NDFilter = next()
	skip(4)
	m.PersistCount = next()
	m.ShutterSpeedMode = next()
	m.ShutterSpeed = next()
	m.WhiteBalanceMode = next()
	m.WhiteBalanceRed = next()
	m.WhiteBalanceBlue = next()
	m.CameraGain = next()
	m.PlaneCompensation = next()
	m.XYLengthUnit = next()
	m.ZLengthUnit = next()
	m.XYDecimalPlace = next()
	m.ZDecimalPlace = next()
	m.XLengthPerPixel = next()
	m.YLengthPerPixel = next()
	m.ZLengthPerDigit = next()
	skip(20)
	m.LightFilterType = next()
	skip(4)
	m.GammaReverse = next()
	m.Gamma = next()
	m.GammaOffset = next()
	m.CCDBWOffset = next()
	m.NumericalAperture = next()
	m.HeadType = next()
	m.PMTGain2 = next()
	m.OmitColorImage = next()
	m.LensID = next()
	for i := 0; i < 5; i++ {
		m.LightLUTIn[i] = next()
		m.LightLUTOut[i] = next()
	}
	m.UpperPosition = next()
	m.LowerPosition = next()
	m.LightEffectiveBitDepth = next()
	m.HeightEffectiveBitDepth = next()

	return &m, nil
}
