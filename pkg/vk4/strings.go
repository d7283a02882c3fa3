package vk4

import (
	"fmt"
	"unicode/utf16"
)

// StringMetadata holds the free-text fields of the container. Both are
// stored as a u32 count of UTF-16 code units followed by the UTF-16LE
// payload; a zero count decodes to an empty string.
type StringMetadata struct {
	Title    string
	LensName string
}

// decodeStrings reads the title and lens name runs, in that order, at the
// string_data offset.
func decodeStrings(t OffsetTable, cur cursor) (*StringMetadata, error) {
	base := t.StringData
	if base == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionAbsent, SectionStringData)
	}
	title, n, err := readUTF16(cur, base)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	lens, _, err := readUTF16(cur, base+n)
	if err != nil {
		return nil, fmt.Errorf("lens name: %w", err)
	}
	return &StringMetadata{Title: title, LensName: lens}, nil
}

// readUTF16 decodes one length-prefixed text run and reports the total
// bytes consumed including the prefix.
func readUTF16(cur cursor, off uint32) (string, uint32, error) {
	payload, n, err := cur.lengthPrefixed(off, 2)
	if err != nil {
		return "", 0, err
	}
	units := make([]uint16, len(payload)/2)
	for i := range units {
		units[i] = le.Uint16(payload[2*i:])
	}
	return string(utf16.Decode(units)), n, nil
}
