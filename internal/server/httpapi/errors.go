package httpapi

import (
	"errors"
	"net/http"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/labstack/echo/v4"
)

// httpError translates service-layer sentinel errors into HTTP statuses with
// short messages. Internal detail never reaches the client.
func httpError(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrNotConfigured):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
