package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "request cannot be processed",
	http.StatusServiceUnavailable:  "service unavailable",
}

// ErrorResponse is the body of every translated error
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewErrorHandler renders HTTP errors with a known code as an ErrorResponse.
// Anything else, including plain errors returned by handlers, goes to fallback.
func NewErrorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			fallback(err, c)
			return
		}
		message, ok := errorMessages[he.Code]
		if !ok {
			fallback(err, c)
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, ErrorResponse{
				Success: false,
				Error:   he.Code,
				Message: message,
			})
		}
		if err != nil {
			c.Logger().Error(err)
		}
	}
}
