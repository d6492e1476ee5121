package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

func spannerErr(c codes.Code) error {
	return spanner.ToSpannerError(status.Error(c, c.String()))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrLimitBoundsMissing, http.StatusBadRequest},
		{"rule condition", domain.ErrInvalidRuleCondition, http.StatusBadRequest},
		{"not found", domain.ErrFeeRuleNotFound, http.StatusNotFound},
		{"row not found", spanner.ErrRowNotFound, http.StatusNotFound},
		{"conflict", domain.ErrLifecycleOverlap, http.StatusConflict},
		{"wrapped conflict", fmt.Errorf("add item: %w", domain.ErrBundleItemDuplicate), http.StatusConflict},
		{"canceled", context.Canceled, statusClientClosedRequest},
		{"wrapped deadline", fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"spanner already exists", spannerErr(codes.AlreadyExists), http.StatusConflict},
		{"spanner not found", spannerErr(codes.NotFound), http.StatusNotFound},
		{"spanner failed precondition", spannerErr(codes.FailedPrecondition), http.StatusConflict},
		{"spanner canceled", spannerErr(codes.Canceled), statusClientClosedRequest},
		{"spanner deadline", spannerErr(codes.DeadlineExceeded), http.StatusGatewayTimeout},
		{"wrapped spanner", fmt.Errorf("commit: %w", spannerErr(codes.AlreadyExists)), http.StatusConflict},
		{"spanner internal", spannerErr(codes.Internal), http.StatusInternalServerError},
		{"spanner unavailable", spannerErr(codes.Unavailable), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestWriteError_HidesInternalSpannerErrors(t *testing.T) {
	s := newTestServer(t)
	s.h.Committer.Err = spannerErr(codes.Internal)

	w := s.do(http.MethodPost, "/v1/products", validProduct)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", errorOf(t, w)["message"])
}
