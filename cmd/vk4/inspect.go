package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/surfacelab/vk4go/pkg/vk4"
)

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:  "inspect",
		Usage: "print the headers, sections and metadata of a VK4 container",
		Flags: append([]cli.Flag{
			inputFlag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable JSON instead of text",
				Destination: &asJSON,
			},
		}, loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			applyLoggingConfig(c, LoadConfig())

			f, err := vk4.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", inputPath, err)
			}
			defer f.Close()

			if asJSON {
				return inspectJSON(os.Stdout, f, inputPath)
			}
			return inspectText(os.Stdout, f, inputPath)
		},
	}
}

type inspectReport struct {
	Source     string              `json:"source"`
	Size       int64               `json:"size"`
	DLLVersion uint32              `json:"dll_version"`
	FileType   uint32              `json:"file_type"`
	Title      string              `json:"title,omitempty"`
	LensName   string              `json:"lens_name,omitempty"`
	Sections   []inspectSection    `json:"sections"`
	Conditions *inspectConditions  `json:"measurement_conditions,omitempty"`
	Layers     []inspectLayerShape `json:"layers,omitempty"`
}

type inspectSection struct {
	Kind    string `json:"kind"`
	Offset  uint32 `json:"offset"`
	Present bool   `json:"present"`
}

type inspectConditions struct {
	Captured          string `json:"captured"`
	LensMagnification uint32 `json:"lens_magnification"`
	OpticalZoom       uint32 `json:"optical_zoom"`
	Pitch             uint32 `json:"pitch"`
	XLengthPerPixel   uint32 `json:"x_length_per_pixel"`
	YLengthPerPixel   uint32 `json:"y_length_per_pixel"`
	ZLengthPerDigit   uint32 `json:"z_length_per_digit"`
}

type inspectLayerShape struct {
	Kind     string `json:"kind"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	BitDepth uint32 `json:"bit_depth"`
}

func buildReport(f *vk4.File, source string) inspectReport {
	rep := inspectReport{
		Source:     source,
		Size:       f.Size(),
		DLLVersion: f.Header.DLLVersion,
		FileType:   f.Header.FileType,
	}

	// Metadata sections are best effort: a corrupt or absent section must
	// not prevent inspection of the rest of the file.
	if meta, err := f.Strings(); err == nil {
		rep.Title = meta.Title
		rep.LensName = meta.LensName
	}
	if m, err := f.MeasurementConditions(); err == nil {
		rep.Conditions = &inspectConditions{
			Captured: fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
				m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second),
			LensMagnification: m.LensMagnification,
			OpticalZoom:       m.OpticalZoom,
			Pitch:             m.Pitch,
			XLengthPerPixel:   m.XLengthPerPixel,
			YLengthPerPixel:   m.YLengthPerPixel,
			ZLengthPerDigit:   m.ZLengthPerDigit,
		}
	}

	for _, s := range vk4.Sections() {
		rep.Sections = append(rep.Sections, inspectSection{
			Kind:    s.String(),
			Offset:  f.Offsets.Offset(s),
			Present: f.Offsets.Present(s),
		})

		if !f.Offsets.Present(s) {
			continue
		}
		switch {
		case s.IsRaster():
			if l, err := f.Raster(s); err == nil {
				rep.Layers = append(rep.Layers, inspectLayerShape{
					Kind: s.String(), Width: l.Width, Height: l.Height, BitDepth: uint32(l.BitDepth),
				})
			}
		case s.IsColor():
			if l, err := f.Color(s); err == nil {
				rep.Layers = append(rep.Layers, inspectLayerShape{
					Kind: s.String(), Width: l.Width, Height: l.Height, BitDepth: uint32(l.BitDepth),
				})
			}
		}
	}

	return rep
}

func inspectJSON(w *os.File, f *vk4.File, source string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildReport(f, source))
}

func inspectText(w *os.File, f *vk4.File, source string) error {
	rep := buildReport(f, source)

	fmt.Fprintf(w, "File:        %s (%d bytes)\n", rep.Source, rep.Size)
	fmt.Fprintf(w, "DLL version: %d\n", rep.DLLVersion)
	fmt.Fprintf(w, "File type:   %d\n", rep.FileType)
	if rep.Title != "" {
		fmt.Fprintf(w, "Title:       %s\n", rep.Title)
	}
	if rep.LensName != "" {
		fmt.Fprintf(w, "Lens:        %s\n", rep.LensName)
	}
	if c := rep.Conditions; c != nil {
		fmt.Fprintf(w, "Captured:    %s\n", c.Captured)
		fmt.Fprintf(w, "Optics:      %dx magnification, zoom %d, pitch %d\n",
			c.LensMagnification, c.OpticalZoom, c.Pitch)
		fmt.Fprintf(w, "Scale:       x=%d y=%d z=%d\n",
			c.XLengthPerPixel, c.YLengthPerPixel, c.ZLengthPerDigit)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tOFFSET\tSHAPE")
	for _, s := range rep.Sections {
		if !s.Present {
			fmt.Fprintf(tw, "%s\t-\t\n", s.Kind)
			continue
		}
		shape := ""
		for _, l := range rep.Layers {
			if l.Kind == s.Kind {
				shape = fmt.Sprintf("%dx%d @ %d-bit", l.Width, l.Height, l.BitDepth)
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Kind, s.Offset, shape)
	}
	return tw.Flush()
}
