package vk4

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestMeasurementConditions(t *testing.T) {
	t.Parallel()

	section := measCondsSection()
	// DiffFromUTC is the 8th field and signed.
	binary.LittleEndian.PutUint32(section[28:32], uint32(0xFFFFFFFF)) // -1

	data := newContainer().add(SectionMeasConds, section).bytes()
	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m, err := f.MeasurementConditions()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// measCondsSection stores field index n at the n-th u32 slot.
	if m.Size != 0 || m.Year != 1 || m.Month != 2 || m.Day != 3 {
		t.Fatalf("timestamp fields: got %d %d %d %d", m.Size, m.Year, m.Month, m.Day)
	}
	if m.Hour != 4 || m.Minute != 5 || m.Second != 6 {
		t.Fatalf("clock fields: got %d %d %d", m.Hour, m.Minute, m.Second)
	}
	if m.DiffFromUTC != -1 {
		t.Fatalf("DiffFromUTC: got %d want -1", m.DiffFromUTC)
	}
	if m.ImageAttributes != 8 || m.Line0Position != 20 {
		t.Fatalf("fixed fields shifted: attrs=%d line0=%d", m.ImageAttributes, m.Line0Position)
	}
	// Fields after the first reserved gap (12 bytes at slots 21-23).
	if m.LensMagnification != 24 || m.NDFilter != 28 {
		t.Fatalf("lens block shifted: mag=%d nd=%d", m.LensMagnification, m.NDFilter)
	}
	// Fields after the second gap (slot 29).
	if m.PersistCount != 30 || m.ZLengthPerDigit != 44 {
		t.Fatalf("shutter block shifted: persist=%d zlpd=%d", m.PersistCount, m.ZLengthPerDigit)
	}
	// Tail fields.
	if m.HeightEffectiveBitDepth != uint32(measCondsSpan/4-1) {
		t.Fatalf("tail field shifted: got %d", m.HeightEffectiveBitDepth)
	}
}

func TestMeasurementConditionsAbsent(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(newContainer().bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.MeasurementConditions(); !errors.Is(err, ErrSectionAbsent) {
		t.Fatalf("absent section: got %v", err)
	}
}

func TestMeasurementConditionsTruncated(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionMeasConds, measCondsSection()[:measCondsSpan-4]).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.MeasurementConditions(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("truncated record: got %v", err)
	}
}
