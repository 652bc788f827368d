package presign

import (
	"errors"
	"fmt"

	"github.com/objgate/server/internal/shared/objectid"
)

var (
	// ErrInvalidArgument is returned for empty identifiers and malformed sign requests.
	ErrInvalidArgument = objectid.ErrInvalidArgument

	// ErrSigningFailure matches every *SigningError.
	ErrSigningFailure = errors.New("presign: signing failed")
	// ErrEmptySignedURL is returned when a backend signs without producing a URL.
	ErrEmptySignedURL = errors.New("presign: backend returned an empty url")

	// ErrTransferFailure matches every *TransferError.
	ErrTransferFailure = errors.New("presign: transfer failed")
	// ErrUnexpectedStatus is wrapped when the endpoint answers with a rejecting status.
	ErrUnexpectedStatus = errors.New("presign: unexpected status")
)

// SigningError reports a failure to produce a signed URL.
type SigningError struct {
	Operation OperationKind
	Bucket    string
	Key       string
	Err       error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("presign: sign %s %s/%s: %v", e.Operation, e.Bucket, e.Key, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// Is makes every SigningError match ErrSigningFailure.
func (e *SigningError) Is(target error) bool { return target == ErrSigningFailure }

// TransferError reports a failed HTTP exchange against a signed URL.
// StatusCode is zero when no response was received.
type TransferError struct {
	Operation  OperationKind
	Bucket     string
	Key        string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("presign: %s %s/%s: status %d: %v", e.Operation, e.Bucket, e.Key, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("presign: %s %s/%s: %v", e.Operation, e.Bucket, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Is makes every TransferError match ErrTransferFailure.
func (e *TransferError) Is(target error) bool { return target == ErrTransferFailure }
