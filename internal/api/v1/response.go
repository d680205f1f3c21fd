package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/payment"
)

type MetaData struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  any      `json:"errors,omitempty"`
	Meta    MetaData `json:"meta"`
}

func meta(c *gin.Context) MetaData {
	return MetaData{
		RequestID: c.GetHeader("X-Request-ID"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta(c),
	})
}

func fail(c *gin.Context, status int, message string, errs gin.H) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
		Meta:    meta(c),
	})
}

// failErr maps service errors onto the HTTP taxonomy: 401 credentials/session,
// 403 role, 400 validation, 404 missing, 409 stock conflict, 502 upstream
// provider, 500 otherwise.
func failErr(c *gin.Context, message string, err error) {
	fail(c, statusFor(err), message, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrOutOfStock):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrEmptyCart),
		errors.Is(err, common.ErrQuantityRange),
		errors.Is(err, common.ErrPriceRange),
		errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrSelfDelete),
		errors.Is(err, common.ErrInvalidRole),
		errors.Is(err, common.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
