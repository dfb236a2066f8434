package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "Internal server error"

// HTTPErrorHandler renders every error as {"error": message}. Anything that is
// not an ApiErr or echo.HTTPError, and every 5xx, is logged and answered with a
// generic message.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := internalErrorMessage

	var apiErr *errs.ApiErr
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		if status < http.StatusInternalServerError {
			msg = apiErr.Error()
		} else {
			logUnexpected(c, apiErr.GetFullError())
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if status < http.StatusInternalServerError {
			msg = fmt.Sprint(httpErr.Message)
		} else {
			logUnexpected(c, err.Error())
		}
	default:
		logUnexpected(c, err.Error())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": msg})
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to write error response")
	}
}

func logUnexpected(c echo.Context, detail string) {
	log.Error().
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg(detail)
}
