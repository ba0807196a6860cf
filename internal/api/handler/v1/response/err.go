package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every error response.
type Err struct {
	HTTPStatusCode int      `json:"-"`
	StatusCode     int      `json:"status_code"`
	ErrorCode      string   `json:"error_code,omitempty"`
	Message        string   `json:"message"`
	Details        []string `json:"details,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func (e *Err) WithCode(code string) *Err {
	e.ErrorCode = code
	return e
}

func (e *Err) WithDetails(details ...string) *Err {
	e.Details = append(e.Details, details...)
	return e
}

func RenderErr(ctx *gin.Context, e *Err) {
	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, message string) *Err {
	return &Err{
		HTTPStatusCode: status,
		StatusCode:     status,
		Message:        message,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error())
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err.Error())
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err.Error())
}

func ErrNotFound(resource, field string, value any) *Err {
	return newErr(http.StatusNotFound, fmt.Sprintf("%s with %s %v not found", resource, field, value))
}

func ErrConflict(message string) *Err {
	return newErr(http.StatusConflict, message)
}

// ErrInternalServerError logs err and hides it from the client.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return newErr(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
