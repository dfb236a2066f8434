package handlers

import (
	"strconv"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/labstack/echo/v4"
)

// Guards are the two authentication middlewares a route can be registered with.
type Guards struct {
	Optional echo.MiddlewareFunc
	Required echo.MiddlewareFunc
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValidation("Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return errs.NewValidation(err.Error())
	}
	return nil
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.NewValidation("Invalid " + entity + " ID")
	}
	return uint(id), nil
}

// pageParams reads page and limit; services clamp them.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}
