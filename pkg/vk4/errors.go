package vk4

import "errors"

var (
	// ErrInvalidHeader means the file does not start with the VK4 signature.
	ErrInvalidHeader = errors.New("vk4: invalid container header")

	// ErrOutOfBounds means a computed read range runs past the end of the
	// file. No partial record is ever returned.
	ErrOutOfBounds = errors.New("vk4: read past end of file")

	// ErrSectionAbsent means the requested section's offset is zero.
	// Callers may treat this as "no data for this layer".
	ErrSectionAbsent = errors.New("vk4: section not present")

	// ErrUnsupportedBitDepth means a section header declares a per-sample
	// width the decoder does not recognize.
	ErrUnsupportedBitDepth = errors.New("vk4: unsupported bit depth")

	// ErrUnknownLayout means an offset points at a section whose layout is
	// undocumented. Observed files always leave these offsets zero.
	ErrUnknownLayout = errors.New("vk4: unrecognized section layout")
)
