package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/surfacelab/vk4go/pkg/vk4"
)

// decodeStatus maps decoder failures to HTTP statuses. An absent section
// is not-found, a corrupt or unsupported section is unprocessable; one
// failing layer never affects requests for other layers.
func decodeStatus(err error) (int, string) {
	switch {
	case errors.Is(err, vk4.ErrSectionAbsent):
		return http.StatusNotFound, "section_absent"
	case errors.Is(err, vk4.ErrOutOfBounds):
		return http.StatusUnprocessableEntity, "corrupt_section"
	case errors.Is(err, vk4.ErrUnsupportedBitDepth):
		return http.StatusUnprocessableEntity, "unsupported_bit_depth"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeDecodeError(c *echo.Context, err error) error {
	status, typ := decodeStatus(err)
	return writeError(c, status, typ, err.Error())
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	body, err := json.Marshal(map[string]any{
		"error": ResponseError{Message: msg, Type: errType},
	})
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
