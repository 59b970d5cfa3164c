package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petalert/petalert/client"
	"github.com/petalert/petalert/internal/domain"
)

type errorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Upstream int    `json:"upstream,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func BadRequest(c echo.Context, err error) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("module", "presenter"))
	resp := errorResponse{Error: err.Error()}
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	return c.JSON(http.StatusBadRequest, resp)
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", msg), slog.String("module", "presenter"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "unauthorized", slog.String("error", msg), slog.String("module", "presenter"))
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "not found", slog.String("error", msg), slog.String("module", "presenter"))
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// BadGateway reports an upstream failure together with the upstream status.
func BadGateway(c echo.Context, err error, code int) error {
	slog.WarnContext(
		c.Request().Context(), "upstream error",
		slog.String("error", err.Error()),
		slog.Int("upstream", code),
		slog.String("module", "presenter"),
	)
	return c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream request failed", Upstream: code})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(c.Request().Context(), "internal error", slog.String("error", err.Error()), slog.String("module", "presenter"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// Error picks the response for err.
func Error(c echo.Context, err error) error {
	var se *client.StatusError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.As(err, &se):
		if se.Code == http.StatusUnauthorized {
			return Unauthorized(c, "upstream rejected the token")
		}
		return BadGateway(c, err, se.Code)
	default:
		return InternalError(c, err)
	}
}
