package catalog

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
	"github.com/murkotick/financial-catalog-service/internal/transport/http/middleware"
)

// statusClientClosedRequest is the nginx convention for a request the
// client gave up on.
const statusClientClosedRequest = 499

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// statusFor maps an application error to an HTTP status. Unknown errors
// become 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, spanner.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}

	switch spanner.ErrCode(err) {
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.Canceled:
		return statusClientClosedRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError renders err with the error contract and aborts the chain.
// Internal errors are logged and never leak their text.
func writeError(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logging.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.ContextRequestID),
			"err", err,
		)
		msg = http.StatusText(code)
	}
	c.AbortWithStatusJSON(code, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeStatus(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
