package render

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/surfacelab/vk4go/pkg/vk4"
)

// GrayImage quantizes raster samples to 8-bit grey over the layer's
// observed value range. A flat layer renders as black.
func GrayImage(l *vk4.RasterLayer) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, int(l.Width), int(l.Height)))
	lo, hi := sampleRange(l.Data)
	span := uint64(hi - lo)
	for i, v := range l.Data {
		var p uint8
		if span > 0 {
			p = uint8(uint64(v-lo) * 255 / span)
		}
		img.Pix[i] = p
	}
	return img
}

// RGBAImage converts a colour layer without touching channel values.
func RGBAImage(l *vk4.ColorLayer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(l.Width), int(l.Height)))
	n := int(l.Width) * int(l.Height)
	for i := 0; i < n; i++ {
		r, g, b := l.RGB(i)
		img.Pix[4*i] = r
		img.Pix[4*i+1] = g
		img.Pix[4*i+2] = b
		img.Pix[4*i+3] = 255
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteJPEG encodes img as JPEG at the given quality (1-100).
func WriteJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
