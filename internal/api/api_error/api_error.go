package api_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/logic"
)

type APIError struct {
	error
	httpStatus int
}

func (e APIError) Unwrap() error {
	return e.error
}

func (e APIError) HTTPStatus() int {
	return e.httpStatus
}

func New(e error, httpStatus int) APIError {
	return APIError{error: e, httpStatus: httpStatus}
}

func NewFromStr(s string, httpStatus int) APIError {
	return APIError{error: errors.New(s), httpStatus: httpStatus}
}

// FromLogic maps the domain error taxonomy onto HTTP statuses. A policy
// denial is 401 for anonymous callers and 403 for authenticated ones;
// anything outside the taxonomy is an infrastructure failure.
func FromLogic(err error, authenticated bool) APIError {
	switch {
	case logic.IsValidation(err):
		return New(err, http.StatusBadRequest)
	case logic.IsUniqueConstraint(err):
		return New(err, http.StatusConflict)
	case logic.IsNotFound(err):
		return New(err, http.StatusNotFound)
	case logic.IsAccessDenied(err):
		if authenticated {
			return New(err, http.StatusForbidden)
		}
		return New(err, http.StatusUnauthorized)
	default:
		return New(err, http.StatusInternalServerError)
	}
}

func ToResponse(c *gin.Context, e error) {
	var currentErr APIError

	if errors.As(e, &currentErr) {
		c.JSON(currentErr.HTTPStatus(), gin.H{"message": currentErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": e.Error()})
}
