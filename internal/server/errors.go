package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contentdomain "github.com/kolahope/kolahope/internal/content/domain"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	userroledomain "github.com/kolahope/kolahope/internal/userrole/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Retry   bool   `json:"retry,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: validationMessage(err),
		}
	case errors.Is(err, donationdomain.ErrGateway):
		// The gateway rejected the request; surface its message so the
		// donor sees why checkout failed.
		return http.StatusBadRequest, errorPayload{
			Type:    "gateway_error",
			Message: gatewayMessage(err),
		}
	case errors.Is(err, donationdomain.ErrGatewayTimeout):
		return http.StatusGatewayTimeout, errorPayload{
			Type:    "gateway_timeout",
			Message: "payment gateway timed out",
			Retry:   true,
		}
	case errors.Is(err, donationdomain.ErrPersistence):
		// The payment may have settled at the gateway; the caller must
		// retry verification so the ledger write is not lost.
		return http.StatusInternalServerError, errorPayload{
			Type:    "persistence_error",
			Message: "failed to record payment, please retry verification",
			Retry:   true,
		}
	case errors.Is(err, donationdomain.ErrNotConfigured):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "payment gateway is not configured",
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
			Retry:   true,
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, donationdomain.ErrAmountRequired),
		errors.Is(err, donationdomain.ErrAmountBelowFloor),
		errors.Is(err, donationdomain.ErrInvalidEmail),
		errors.Is(err, donationdomain.ErrMissingReference),
		errors.Is(err, donationdomain.ErrInvalidProgram),
		errors.Is(err, programdomain.ErrInvalidTitle),
		errors.Is(err, programdomain.ErrInvalidGoal),
		errors.Is(err, programdomain.ErrInvalidID),
		errors.Is(err, leadsdomain.ErrInvalidName),
		errors.Is(err, leadsdomain.ErrInvalidEmail),
		errors.Is(err, leadsdomain.ErrInvalidSubject),
		errors.Is(err, leadsdomain.ErrInvalidMessage),
		errors.Is(err, leadsdomain.ErrInvalidPhone),
		errors.Is(err, leadsdomain.ErrInvalidProgram),
		errors.Is(err, contentdomain.ErrInvalidTitle),
		errors.Is(err, contentdomain.ErrInvalidImage),
		errors.Is(err, contentdomain.ErrInvalidID),
		errors.Is(err, userroledomain.ErrInvalidUser),
		errors.Is(err, userroledomain.ErrInvalidRole):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, programdomain.ErrNotFound),
		errors.Is(err, contentdomain.ErrNotFound),
		errors.Is(err, userroledomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid request"
	}
	return strings.ReplaceAll(leafError(err).Error(), "_", " ")
}

// gatewayMessage strips the sentinel prefix so the response carries
// only the gateway's own message.
func gatewayMessage(err error) string {
	msg := err.Error()
	prefix := donationdomain.ErrGateway.Error() + ": "
	if idx := strings.Index(msg, prefix); idx >= 0 {
		if rest := msg[idx+len(prefix):]; rest != "" {
			return rest
		}
	}
	return "payment gateway rejected the request"
}

func leafError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// classifyErrorForLog tags request-log lines with a coarse error type.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "server_error", payload.Type
	}
	return "client_error", payload.Type
}
