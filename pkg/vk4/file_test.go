package vk4

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

var errTestMismatch = errors.New("parallel result differs from sequential")

func fullContainer() []byte {
	return newContainer().
		add(SectionMeasConds, measCondsSection()).
		add(SectionColorPeak, colorSection(2, 2, []byte{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
		})).
		add(SectionColorLight, colorSection(2, 2, make([]byte, 12))).
		add(SectionLight, rasterSection(2, 2, 16, []uint32{100, 200, 300, 400})).
		add(SectionHeight, rasterSection(2, 2, 32, []uint32{5, 6, 7, 8})).
		add(SectionStringData, stringSection("title", "lens")).
		bytes()
}

func TestOpenFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.vk4")
	if err := os.WriteFile(path, fullContainer(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	h, err := f.Height()
	if err != nil {
		t.Fatalf("decode height: %v", err)
	}
	if h.Data[0] != 5 || h.Data[3] != 8 {
		t.Fatalf("height samples: got %v", h.Data)
	}
	s, err := f.Strings()
	if err != nil {
		t.Fatalf("decode strings: %v", err)
	}
	if s.Title != "title" {
		t.Fatalf("title: got %q", s.Title)
	}
}

func TestOpenReaderAt(t *testing.T) {
	t.Parallel()

	data := fullContainer()
	f, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open readerat: %v", err)
	}
	defer func() { _ = f.Close() }()

	if f.mmapped {
		t.Fatalf("OpenReaderAt should not mmap")
	}
	if _, err := f.Light(); err != nil {
		t.Fatalf("decode light: %v", err)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(fullContainer())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	first, err := f.Height()
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, err := f.Height()
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated decode differs")
	}
	// Records are independent copies, not views.
	second.Data[0] = 999
	if first.Data[0] == 999 {
		t.Fatalf("decoded records share a buffer")
	}
}

func TestParallelDecode(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(fullContainer())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	wantHeight, err := f.Height()
	if err != nil {
		t.Fatalf("sequential height: %v", err)
	}
	wantPeak, err := f.ColorPeak()
	if err != nil {
		t.Fatalf("sequential peak: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := f.Height()
			if err != nil {
				errs <- err
				return
			}
			p, err := f.ColorPeak()
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(h, wantHeight) || !reflect.DeepEqual(p, wantPeak) {
				errs <- errTestMismatch
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("parallel decode: %v", err)
	}
}

// One failing section must not prevent decoding unrelated sections.
func TestSectionFailureIsolated(t *testing.T) {
	t.Parallel()

	badLight := u32le(2, 2, 12, 0, 0, 0, 0) // unsupported selector
	badLight = append(badLight, make([]byte, PaletteSize)...)
	data := newContainer().
		add(SectionLight, badLight).
		add(SectionHeight, rasterSection(1, 1, 32, []uint32{42})).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Light(); err == nil {
		t.Fatalf("expected light decode to fail")
	}
	h, err := f.Height()
	if err != nil {
		t.Fatalf("height should still decode: %v", err)
	}
	if h.Data[0] != 42 {
		t.Fatalf("height sample: got %d", h.Data[0])
	}
}
