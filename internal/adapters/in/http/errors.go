package http

import (
	"errors"
	"net/http"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps application errors to HTTP status codes. Validation failures
// from command constructors carry no errs sentinel and fall through to 400 in
// the handlers; everything reaching here came out of a handler's Handle.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrOperationForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrCouponIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
