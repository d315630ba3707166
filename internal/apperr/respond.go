package apperr

import "github.com/labstack/echo/v4"

// JSON writes a typed error as the response body.
func JSON(c echo.Context, err error) error {
	e := FromError(err)
	return c.JSON(e.Status, echo.Map{"code": e.Code, "error": e.Message})
}
