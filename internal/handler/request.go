package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// setOptional records an optional text field update. The field is only
// touched when present in the request; an empty string clears the
// column to NULL.
func setOptional(updates map[string]interface{}, column string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		updates[column] = nil
	} else {
		updates[column] = *v
	}
}

// setOptionalRef records an optional reference field update; a zero id
// clears the reference.
func setOptionalRef(updates map[string]interface{}, column string, v *uint) {
	if v == nil {
		return
	}
	if *v == 0 {
		updates[column] = nil
	} else {
		updates[column] = *v
	}
}
