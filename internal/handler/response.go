// Package handler provides the HTTP surface: probing, acquisition,
// uploads, history, credentials and the OAuth flow.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/errs"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status         int       `json:"status"`
	Error          string    `json:"error"`
	Message        string    `json:"message,omitempty"`
	ActionRequired string    `json:"action_required,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Path           string    `json:"path"`
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidURL:
		return http.StatusBadRequest
	case errs.KindAuthRequired:
		return http.StatusUnauthorized
	case errs.KindPermission:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders any error through the taxonomy. Errors without a
// kind become plain 500s.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	errorLabel := http.StatusText(status)
	action := ""

	if e, ok := errs.AsError(err); ok {
		status = statusFor(e.Kind)
		errorLabel = string(e.Kind)
		message = e.Error()
		action = e.ActionRequired
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	} else {
		logger.Log.Warn("request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	c.JSON(status, ErrorResponse{
		Status:         status,
		Error:          errorLabel,
		Message:        message,
		ActionRequired: action,
		Timestamp:      time.Now(),
		Path:           c.Request.URL.Path,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:    http.StatusBadRequest,
		Error:     "Bad Request",
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
