// Package api serves decoded VK4 layers over HTTP. One server holds one
// opened container; decodes are pure reads of the immutable file, so
// handlers need no locking and layers can be fetched concurrently.
package api

import (
	"bytes"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/surfacelab/vk4go/internal/logger"
	"github.com/surfacelab/vk4go/internal/render"
	"github.com/surfacelab/vk4go/pkg/vk4"
)

type Server struct {
	file   *vk4.File
	source string
	log    logger.Logger
}

// NewServer wraps an opened container. source names the file for the
// info endpoint.
func NewServer(file *vk4.File, source string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{file: file, source: source, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/info", s.handleInfo)
	e.GET("/v1/sections", s.handleSections)
	e.GET("/v1/layers/:kind", s.handleLayer)
}

// RequestID tags every response with a fresh request id for correlation
// with server logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := uuid.NewString()
			c.Response().Header().Set("X-Request-ID", id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}

func (s *Server) handleInfo(c *echo.Context) error {
	info := InfoResponse{
		Source:     s.source,
		DLLVersion: s.file.Header.DLLVersion,
		FileType:   s.file.Header.FileType,
	}
	if meta, err := s.file.Strings(); err == nil {
		info.Title = meta.Title
		info.LensName = meta.LensName
	}
	if conds, err := s.file.MeasurementConditions(); err == nil {
		info.Conditions = conditionsDTO(conds)
	}
	return s.writeJSON(c, http.StatusOK, info)
}

func (s *Server) handleSections(c *echo.Context) error {
	var out []SectionInfo
	for _, sec := range vk4.Sections() {
		class := ""
		switch {
		case sec.IsRaster():
			class = "raster"
		case sec.IsColor():
			class = "color"
		case sec == vk4.SectionMeasConds, sec == vk4.SectionStringData:
			class = "metadata"
		}
		out = append(out, SectionInfo{
			Kind:    sec.String(),
			Offset:  s.file.Offsets.Offset(sec),
			Present: s.file.Offsets.Present(sec),
			Class:   class,
		})
	}
	return s.writeJSON(c, http.StatusOK, out)
}

func (s *Server) handleLayer(c *echo.Context) error {
	kind, ok := vk4.ParseSection(c.Param("kind"))
	if !ok {
		return writeBadRequest(c, "unknown layer kind")
	}
	format := c.QueryParam("format")
	if format == "" {
		format = formatFromAccept(c.Request().Header.Get("Accept"))
	}

	s.log.Debug("layer request", "kind", kind.String(), "format", format,
		"request_id", c.Get("request_id"))

	if kind.IsRaster() {
		l, err := s.file.Raster(kind)
		if err != nil {
			return writeDecodeError(c, err)
		}
		return s.writeRaster(c, l, format)
	}
	l, err := s.file.Color(kind)
	if err != nil {
		return writeDecodeError(c, err)
	}
	return s.writeColor(c, l, format)
}

// formatFromAccept maps an Accept header to a representation name. The
// format query parameter wins when both are present; anything the server
// cannot produce falls back to JSON.
func formatFromAccept(accept string) string {
	switch {
	case strings.Contains(accept, "text/csv"):
		return "csv"
	case strings.Contains(accept, "image/png"):
		return "png"
	case strings.Contains(accept, "image/tiff"):
		return "tiff"
	default:
		return "json"
	}
}

func (s *Server) writeRaster(c *echo.Context, l *vk4.RasterLayer, format string) error {
	switch format {
	case "json":
		return s.writeJSON(c, http.StatusOK, RasterResponse{
			Kind:     l.Kind.String(),
			Width:    l.Width,
			Height:   l.Height,
			BitDepth: uint32(l.BitDepth),
			Palette:  l.Palette,
			Data:     l.Data,
		})
	case "csv":
		var buf bytes.Buffer
		if err := render.WriteRasterCSV(&buf, l); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	case "png":
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, render.GrayImage(l)); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	case "tiff":
		var buf bytes.Buffer
		if err := render.WriteRasterTIFF(&buf, l); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/tiff", buf.Bytes())
	default:
		return writeBadRequest(c, "unknown format "+format)
	}
}

func (s *Server) writeColor(c *echo.Context, l *vk4.ColorLayer, format string) error {
	switch format {
	case "json":
		return s.writeJSON(c, http.StatusOK, ColorResponse{
			Kind:   l.Kind.String(),
			Width:  l.Width,
			Height: l.Height,
			Data:   l.Data,
		})
	case "csv":
		var buf bytes.Buffer
		if err := render.WriteColorCSV(&buf, l); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	case "png":
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, render.RGBAImage(l)); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	case "tiff":
		var buf bytes.Buffer
		if err := render.WriteColorTIFF(&buf, l); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/tiff", buf.Bytes())
	default:
		return writeBadRequest(c, "unknown format "+format)
	}
}

func (s *Server) writeJSON(c *echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
