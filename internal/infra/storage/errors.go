package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	apperrors "github.com/objgate/server/internal/shared/errors"
)

// Storage error classes.
var (
	ErrNotFound    = errors.New("storage: not found")
	ErrConflict    = errors.New("storage: conflict")
	ErrUnavailable = errors.New("storage: unavailable")
)

// Classify wraps err with the storage error class it belongs to.
// The original error stays in the chain.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NoSuchKey", "NotFound", "NoSuchTagSet":
			return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou", "BucketNotEmpty", "OperationAborted":
			return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isClientFault reports whether err was caused by the request rather than the endpoint.
func isClientFault(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		return status >= 400 && status < 500
	}
	return false
}

// ErrorMapping maps classified storage errors to API errors.
// Unclassified failures are left to the caller.
func ErrorMapping(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, ErrUnavailable):
		return apperrors.ServiceUnavailable("object storage is unavailable")
	case errors.Is(err, ErrNotFound):
		appErr := apperrors.NotFound("resource")
		appErr.Err = err
		return appErr
	case errors.Is(err, ErrConflict):
		appErr := apperrors.Conflict("resource already exists or is in use")
		appErr.Err = err
		return appErr
	default:
		return nil
	}
}
