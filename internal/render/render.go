// Package render turns decoded VK4 layers into external representations:
// CSV rows, quantized PNG/JPEG images and unscaled TIFF. It consumes the
// decoder's flat sample buffers and owns all reshaping; rows are rebuilt
// in row-major order with the layer width as the fast dimension, matching
// the container's native scan order.
package render

import "github.com/surfacelab/vk4go/pkg/vk4"

// Channel selects one of the interleaved colour channels.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "channel(?)"
	}
}

// ParseChannel maps an external channel name to its Channel. It accepts
// the lowercase names and single-letter forms used by the CLI.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "red", "r":
		return Red, true
	case "green", "g":
		return Green, true
	case "blue", "b":
		return Blue, true
	}
	return 0, false
}

// RasterRows reshapes the flat sample buffer into rows.
func RasterRows(l *vk4.RasterLayer) [][]uint32 {
	rows := make([][]uint32, l.Height)
	for y := uint32(0); y < l.Height; y++ {
		rows[y] = l.Data[y*l.Width : (y+1)*l.Width]
	}
	return rows
}

// CompositeRGB packs each pixel's channels into a single r<<16|g<<8|b
// word, the representation used for colour CSV output.
func CompositeRGB(l *vk4.ColorLayer) []uint32 {
	n := int(l.Width) * int(l.Height)
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		r, g, b := l.RGB(i)
		out[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return out
}

// ChannelOnly returns a copy of the colour data with every channel except
// the selected one zeroed.
func ChannelOnly(l *vk4.ColorLayer, ch Channel) []byte {
	out := make([]byte, len(l.Data))
	for i := 0; i < len(l.Data); i += 3 {
		out[i+int(ch)] = l.Data[i+int(ch)]
	}
	return out
}

// sampleRange finds the observed min and max sample values, used by the
// 8-bit quantizers.
func sampleRange(data []uint32) (lo, hi uint32) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
