package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/surfacelab/vk4go/internal/render"
	"github.com/surfacelab/vk4go/pkg/vk4"
)

func extractCmd() *cli.Command {
	var (
		layerName   string
		channelName string
		format      string
		outDir      string
		outPath     string
		quality     int
	)

	return &cli.Command{
		Name:  "extract",
		Usage: "extract a layer from a VK4 container to csv, hcsv, png, jpeg or tiff",
		Flags: append([]cli.Flag{
			inputFlag(),
			&cli.StringFlag{
				Name:        "layer",
				Aliases:     []string{"l"},
				Usage:       "layer to extract (height, light, peak, rgblight, height_thumb, light_thumb, peak_thumb, color_thumb)",
				Value:       "height",
				Destination: &layerName,
			},
			&cli.StringFlag{
				Name:        "channel",
				Aliases:     []string{"c"},
				Usage:       "restrict a colour layer to a single channel (red, green, blue)",
				Destination: &channelName,
			},
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "output format (csv, hcsv, png, jpeg, tiff)",
				Value:       "csv",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"d"},
				Usage:       "directory for generated files",
				Value:       ".",
				Destination: &outDir,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "explicit output path (overrides the derived name)",
				Destination: &outPath,
			},
			&cli.IntFlag{
				Name:        "quality",
				Usage:       "jpeg quality (1-100)",
				Value:       90,
				Destination: &quality,
			},
		}, loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			applyExtractConfig(c, LoadConfig(), &outDir, &format, &quality)
			log := newLogger()

			kind, ok := vk4.ParseSection(layerName)
			if !ok {
				return fmt.Errorf("unknown layer %q", layerName)
			}
			var channel render.Channel
			if channelName != "" {
				channel, ok = render.ParseChannel(channelName)
				if !ok {
					return fmt.Errorf("unknown channel %q", channelName)
				}
				if !kind.IsColor() {
					return fmt.Errorf("channel selection needs a colour layer, %s is not one", kind)
				}
			}
			if quality < 1 || quality > 100 {
				return fmt.Errorf("quality %d out of range 1-100", quality)
			}

			f, err := vk4.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", inputPath, err)
			}
			defer f.Close()

			var meta render.FileMeta
			if format == "hcsv" {
				meta = fileMeta(f, inputPath)
			}

			var write func(io.Writer) error
			if kind.IsColor() {
				layer, err := f.Color(kind)
				if err != nil {
					return fmt.Errorf("decode %s: %w", kind, err)
				}
				if channelName != "" {
					layer = channelLayer(layer, channel)
				}
				write = func(w io.Writer) error {
					return writeColorLayer(w, layer, format, quality, meta)
				}
			} else {
				layer, err := f.Raster(kind)
				if err != nil {
					return fmt.Errorf("decode %s: %w", kind, err)
				}
				write = func(w io.Writer) error {
					return writeRasterLayer(w, layer, format, quality, meta)
				}
			}

			dest := outPath
			if dest == "" {
				dest = filepath.Join(outDir, outputName(inputPath, kind, format))
			}

			log.Info("extracting layer",
				"input", inputPath,
				"layer", kind.String(),
				"channel", channelName,
				"format", format,
				"output", dest,
			)

			out, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("create %s: %w", dest, err)
			}
			if err := closeWritten(out, write(out)); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}

			log.Info("layer written", "output", dest)
			return nil
		},
	}
}

// fileMeta collects the metadata echoed in headered CSV output. Both
// sections are best effort; a corrupt or absent one leaves its fields
// empty rather than failing the extraction.
func fileMeta(f *vk4.File, source string) render.FileMeta {
	meta := render.FileMeta{Source: source}
	if s, err := f.Strings(); err == nil {
		meta.Title = s.Title
		meta.LensName = s.LensName
	}
	if m, err := f.MeasurementConditions(); err == nil {
		meta.Conditions = m
	}
	return meta
}

// channelLayer returns a copy of l with every channel except ch zeroed.
// The source layer is left untouched.
func channelLayer(l *vk4.ColorLayer, ch render.Channel) *vk4.ColorLayer {
	only := *l
	only.Data = render.ChannelOnly(l, ch)
	return &only
}

// closeWritten closes the output once writing has finished. A write error
// takes precedence; a clean write still fails when close reports an error.
func closeWritten(c io.Closer, werr error) error {
	cerr := c.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func writeRasterLayer(w io.Writer, l *vk4.RasterLayer, format string, quality int, meta render.FileMeta) error {
	switch format {
	case "csv":
		return render.WriteRasterCSV(w, l)
	case "hcsv":
		return render.WriteRasterHCSV(w, l, meta)
	case "png":
		return render.WritePNG(w, render.GrayImage(l))
	case "jpeg", "jpg":
		return render.WriteJPEG(w, render.GrayImage(l), quality)
	case "tiff", "tif":
		return render.WriteRasterTIFF(w, l)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeColorLayer(w io.Writer, l *vk4.ColorLayer, format string, quality int, meta render.FileMeta) error {
	switch format {
	case "csv":
		return render.WriteColorCSV(w, l)
	case "hcsv":
		return render.WriteColorHCSV(w, l, meta)
	case "png":
		return render.WritePNG(w, render.RGBAImage(l))
	case "jpeg", "jpg":
		return render.WriteJPEG(w, render.RGBAImage(l), quality)
	case "tiff", "tif":
		return render.WriteColorTIFF(w, l)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// outputName derives the output filename from the input basename, the
// layer kind and the requested format: scan.vk4 + height + csv ->
// scan_height.csv.
func outputName(input string, kind vk4.Section, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := format
	switch format {
	case "jpg":
		ext = "jpeg"
	case "tif":
		ext = "tiff"
	case "hcsv":
		ext = "csv"
	}

	layer := strings.ToLower(kind.String())
	return base + "_" + layer + "." + ext
}
