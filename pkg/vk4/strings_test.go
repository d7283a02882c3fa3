package vk4

import (
	"errors"
	"testing"
)

func TestStringMetadata(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionStringData, stringSection("Weld seam Y1_X1", "50x CF Plan")).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, err := f.Strings()
	if err != nil {
		t.Fatalf("decode strings: %v", err)
	}
	if s.Title != "Weld seam Y1_X1" {
		t.Fatalf("title: got %q", s.Title)
	}
	if s.LensName != "50x CF Plan" {
		t.Fatalf("lens name: got %q", s.LensName)
	}
}

func TestStringMetadataNonASCII(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionStringData, stringSection("試料 µm", "20×")).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, err := f.Strings()
	if err != nil {
		t.Fatalf("decode strings: %v", err)
	}
	if s.Title != "試料 µm" || s.LensName != "20×" {
		t.Fatalf("got %q / %q", s.Title, s.LensName)
	}
}

func TestStringMetadataEmpty(t *testing.T) {
	t.Parallel()

	data := newContainer().
		add(SectionStringData, stringSection("", "")).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, err := f.Strings()
	if err != nil {
		t.Fatalf("empty runs should decode: %v", err)
	}
	if s.Title != "" || s.LensName != "" {
		t.Fatalf("got %q / %q", s.Title, s.LensName)
	}
}

func TestStringMetadataAbsent(t *testing.T) {
	t.Parallel()

	f, err := OpenBytes(newContainer().bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Strings(); !errors.Is(err, ErrSectionAbsent) {
		t.Fatalf("absent section: got %v", err)
	}
}

func TestStringMetadataOverrun(t *testing.T) {
	t.Parallel()

	// Title declares more code units than the file holds.
	data := newContainer().
		add(SectionStringData, u32le(1000)).
		bytes()

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.Strings(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("overrun: got %v", err)
	}
}
