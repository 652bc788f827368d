package presign

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OperationKind is the object operation a URL is signed for.
type OperationKind int

const (
	OperationRead OperationKind = iota + 1
	OperationWrite
	OperationDelete
)

// Method returns the HTTP method the operation is executed with.
func (k OperationKind) Method() string {
	switch k {
	case OperationRead:
		return http.MethodGet
	case OperationWrite:
		return http.MethodPut
	case OperationDelete:
		return http.MethodDelete
	default:
		return ""
	}
}

func (k OperationKind) String() string {
	switch k {
	case OperationRead:
		return "read"
	case OperationWrite:
		return "write"
	case OperationDelete:
		return "delete"
	default:
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known operations.
func (k OperationKind) Valid() bool {
	return k >= OperationRead && k <= OperationDelete
}

// ParseOperationKind parses "read", "write" or "delete", case-insensitively.
func ParseOperationKind(s string) (OperationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read":
		return OperationRead, nil
	case "write":
		return OperationWrite, nil
	case "delete":
		return OperationDelete, nil
	default:
		return 0, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, s)
	}
}

// SignRequest asks for one signed URL.
// Payload is set for writes only; a non-nil empty slice is a zero-length payload.
type SignRequest struct {
	BucketName string
	ObjectKey  string
	Operation  OperationKind
	Payload    []byte
}

// SignedURL is a time-limited URL authorizing one operation on one object.
type SignedURL struct {
	URL       string
	Method    string
	Header    http.Header // headers bound into the signature; replayed on execution
	Operation OperationKind
	Bucket    string
	Key       string
	SignedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the URL is no longer valid at t.
func (u *SignedURL) Expired(t time.Time) bool {
	return !t.Before(u.ExpiresAt)
}

// TransferOutcome is the result of executing a signed URL.
type TransferOutcome struct {
	Operation        OperationKind
	Success          bool
	StatusCode       int
	Status           string
	Body             []byte
	BytesTransferred int64
}
