package vk4

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is an opened VK4 container. The header and offset table are parsed
// eagerly at open time; section decodes happen on demand. The source bytes
// and the table are immutable after open, so every decode is a pure
// function of them and any number of sections may be decoded concurrently.
type File struct {
	data    []byte
	mmapped bool

	Header  FileHeader
	Offsets OffsetTable
}

// Open maps a VK4 file read-only and validates its header. If mmap is
// unavailable, it falls back to ReadAt-based loading. The returned file
// must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("%w: file size %d", ErrOutOfBounds, size64)
	}
	size := int(size64)

	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		size,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err == nil {
		vf, parseErr := parseFileData(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return vf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

// OpenReaderAt loads and validates a container from a random-access reader
// without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: size %d", ErrOutOfBounds, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

// OpenBytes validates a container held in memory. The caller must not
// mutate data while the file is in use; decoded records never alias it.
func OpenBytes(data []byte) (*File, error) {
	return parseFileData(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parseFileData(data []byte, mmapped bool) (*File, error) {
	cur := cursor{data: data}
	hdr, offsets, err := parseHeader(cur)
	if err != nil {
		return nil, err
	}
	if bad := offsets.unrecognized(); len(bad) > 0 {
		return nil, fmt.Errorf("%w: non-zero %s offset %d",
			ErrUnknownLayout, bad[0], offsets.Offset(bad[0]))
	}
	return &File{
		data:    data,
		mmapped: mmapped,
		Header:  hdr,
		Offsets: offsets,
	}, nil
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.data)
	}
	f.data = nil
	f.mmapped = false
	return err
}

// Size returns the container's total byte length.
func (f *File) Size() int64 {
	return int64(len(f.data))
}

func (f *File) cursor() cursor {
	return cursor{data: f.data}
}

// MeasurementConditions decodes the instrument metadata record.
func (f *File) MeasurementConditions() (*MeasurementConditions, error) {
	return decodeMeasurementConditions(f.Offsets, f.cursor())
}

// Raster decodes a single-channel section: height, light or one of their
// thumbnails.
func (f *File) Raster(kind Section) (*RasterLayer, error) {
	return decodeRaster(f.Offsets, kind, f.cursor())
}

// Color decodes an interleaved RGB section.
func (f *File) Color(kind Section) (*ColorLayer, error) {
	return decodeColor(f.Offsets, kind, f.cursor())
}

// Strings decodes the free-text metadata section.
func (f *File) Strings() (*StringMetadata, error) {
	return decodeStrings(f.Offsets, f.cursor())
}

// Height decodes the height raster.
func (f *File) Height() (*RasterLayer, error) {
	return f.Raster(SectionHeight)
}

// Light decodes the light intensity raster.
func (f *File) Light() (*RasterLayer, error) {
	return f.Raster(SectionLight)
}

// ColorPeak decodes the RGB peak capture.
func (f *File) ColorPeak() (*ColorLayer, error) {
	return f.Color(SectionColorPeak)
}

// ColorLight decodes the RGB plus laser capture.
func (f *File) ColorLight() (*ColorLayer, error) {
	return f.Color(SectionColorLight)
}
