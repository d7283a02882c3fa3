package vk4

import (
	"errors"
	"testing"
)

func TestHeightRoundTrip(t *testing.T) {
	t.Parallel()

	// Row 0 then row 1, width as the fast dimension.
	samples := []uint32{10, 20, 30, 40}
	data := newContainer().
		add(SectionHeight, rasterSection(2, 2, 32, samples)).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l, err := f.Height()
	if err != nil {
		t.Fatalf("decode height: %v", err)
	}

	if l.Kind != SectionHeight {
		t.Fatalf("kind: got %s", l.Kind)
	}
	if l.Width != 2 || l.Height != 2 {
		t.Fatalf("dimensions: got %dx%d", l.Width, l.Height)
	}
	if len(l.Data) != int(l.Width*l.Height) {
		t.Fatalf("data length: got %d want %d", len(l.Data), l.Width*l.Height)
	}
	for i, want := range samples {
		if l.Data[i] != want {
			t.Fatalf("sample %d: got %d want %d", i, l.Data[i], want)
		}
	}
	if got := l.At(1, 1); got != 40 {
		t.Fatalf("At(1,1): got %d want 40", got)
	}
	if len(l.Palette) != PaletteSize {
		t.Fatalf("palette length: got %d want %d", len(l.Palette), PaletteSize)
	}
}

func TestLightSixteenBit(t *testing.T) {
	t.Parallel()

	samples := []uint32{0xFFFF, 0, 0x1234, 7, 8, 9}
	data := newContainer().
		add(SectionLight, rasterSection(3, 2, 16, samples)).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l, err := f.Light()
	if err != nil {
		t.Fatalf("decode light: %v", err)
	}
	if l.BitDepth != 16 {
		t.Fatalf("bit depth: got %d", l.BitDepth)
	}
	for i, want := range samples {
		if l.Data[i] != want {
			t.Fatalf("sample %d: got %d want %d", i, l.Data[i], want)
		}
	}
}

func TestThumbnailEightBit(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionLightThumb, rasterSection(2, 1, 8, []uint32{200, 100})).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l, err := f.Raster(SectionLightThumb)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if l.Data[0] != 200 || l.Data[1] != 100 {
		t.Fatalf("samples: got %v", l.Data)
	}
}

func TestRasterTruncatedBuffer(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionHeight, rasterSection(2, 2, 32, []uint32{1, 2, 3, 4})).
		bytes()
	// One byte short of the declared pixel buffer.
	data = data[:len(data)-1]

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Height(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("truncated buffer: got %v", err)
	}
}

func TestRasterAbsent(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(newContainer().bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Height(); !errors.Is(err, ErrSectionAbsent) {
		t.Fatalf("absent section: got %v", err)
	}
}

func TestRasterUnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	section := u32le(2, 2, 12, 0, 0, 0, 0) // selector 12 is not a thing
	section = append(section, make([]byte, PaletteSize)...)
	data := newContainer().add(SectionHeight, section).bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Height(); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("bad selector: got %v", err)
	}
}

func TestRasterRejectsColorKind(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(newContainer().bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Raster(SectionColorPeak); err == nil {
		t.Fatalf("expected error for colour kind")
	}
}
