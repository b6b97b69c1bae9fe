package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// statusByCode maps business codes to HTTP statuses. Unknown codes are 400.
var statusByCode = map[string]int{
	"not_found":             http.StatusNotFound,
	"client_not_found":      http.StatusNotFound,
	"session_not_found":     http.StatusNotFound,
	"note_not_found":        http.StatusNotFound,
	"template_not_found":    http.StatusNotFound,
	"invoice_not_found":     http.StatusNotFound,
	"provider_not_found":    http.StatusNotFound,
	"invalid_state":         http.StatusConflict,
	"email_already_exists":  http.StatusConflict,
	"account_exists":        http.StatusConflict,
	"invalid_credentials":   http.StatusUnauthorized,
	"preset_read_only":      http.StatusForbidden,
	"payments_disabled":     http.StatusServiceUnavailable,
	"storage_disabled":      http.StatusServiceUnavailable,
	"unsupported_provider":  http.StatusBadRequest,
	"invoice_already_paid":  http.StatusConflict,
	"template_not_selected": http.StatusBadRequest,
}

var messageByCode = map[string]string{
	"invalid_credentials": "Invalid credentials",
	"invalid_state":       "The record cannot change to the requested state.",
	"preset_read_only":    "Preset templates cannot be changed.",
}

// FromError writes err as JSON. Business errors keep their code; anything
// else becomes a 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, fallbackCode, "Unexpected error.")
		return
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg := messageByCode[code]
	if msg == "" {
		msg = code
	}

	Write(c, status, code, msg)
}
