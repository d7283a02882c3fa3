package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/surfacelab/vk4go/pkg/vk4"
)

// FileMeta is the container metadata echoed at the top of headered CSV
// output. String fields and Conditions are optional; absent values are
// simply left out of the header.
type FileMeta struct {
	Source     string
	Title      string
	LensName   string
	Conditions *vk4.MeasurementConditions
}

// WriteRasterCSV writes one CSV row per raster row, samples unscaled.
func WriteRasterCSV(w io.Writer, l *vk4.RasterLayer) error {
	cw := csv.NewWriter(w)
	record := make([]string, l.Width)
	for _, row := range RasterRows(l) {
		for x, v := range row {
			record[x] = strconv.FormatUint(uint64(v), 10)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRasterHCSV writes the metadata header rows, a blank separator line,
// then the raster samples as WriteRasterCSV does.
func WriteRasterHCSV(w io.Writer, l *vk4.RasterLayer, meta FileMeta) error {
	if err := writeMetaHeader(w, l.Kind.String(), meta); err != nil {
		return err
	}
	return WriteRasterCSV(w, l)
}

// WriteColorHCSV writes the metadata header rows, a blank separator line,
// then composite RGB rows as WriteColorCSV does.
func WriteColorHCSV(w io.Writer, l *vk4.ColorLayer, meta FileMeta) error {
	if err := writeMetaHeader(w, l.Kind.String(), meta); err != nil {
		return err
	}
	return WriteColorCSV(w, l)
}

// writeMetaHeader writes key,value rows describing the source file and the
// capture conditions, closed by one blank line before the sample data.
func writeMetaHeader(w io.Writer, kind string, meta FileMeta) error {
	u := func(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

	rows := [][]string{
		{"source", meta.Source},
		{"layer", kind},
	}
	if meta.Title != "" {
		rows = append(rows, []string{"title", meta.Title})
	}
	if meta.LensName != "" {
		rows = append(rows, []string{"lens", meta.LensName})
	}
	if m := meta.Conditions; m != nil {
		rows = append(rows,
			[]string{"captured", fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
				m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second)},
			[]string{"lens_magnification", u(m.LensMagnification)},
			[]string{"optical_zoom", u(m.OpticalZoom)},
			[]string{"pitch", u(m.Pitch)},
			[]string{"x_length_per_pixel", u(m.XLengthPerPixel)},
			[]string{"y_length_per_pixel", u(m.YLengthPerPixel)},
			[]string{"z_length_per_digit", u(m.ZLengthPerDigit)},
		)
	}

	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteColorCSV writes one CSV row per image row of composite RGB words.
func WriteColorCSV(w io.Writer, l *vk4.ColorLayer) error {
	cw := csv.NewWriter(w)
	comp := CompositeRGB(l)
	record := make([]string, l.Width)
	for y := uint32(0); y < l.Height; y++ {
		row := comp[y*l.Width : (y+1)*l.Width]
		for x, v := range row {
			record[x] = strconv.FormatUint(uint64(v), 10)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
