// internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
)

// grpcError maps known internal errors to appropriate gRPC status errors
func grpcError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, inference.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "%v", err)

	case errors.Is(err, inference.ErrNotLoaded):
		return status.Errorf(codes.FailedPrecondition, "%v", err)

	case errors.Is(err, inference.ErrModelInvocation):
		return status.Errorf(codes.Internal, "model invocation failed: %v", err)

	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}

// httpStatus is the HTTP counterpart of grpcError.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, inference.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, inference.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// invalidArgumentError creates an InvalidArgument gRPC error
func invalidArgumentError(format string, args ...interface{}) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}
