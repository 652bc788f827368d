package presign

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"net/http"
	"time"
)

// Backend computes signed URLs for single object operations.
// signedAt is the signing instant; implementations that cannot pin it sign with their own clock.
type Backend interface {
	PresignRead(ctx context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error)
	PresignWrite(ctx context.Context, bucket, key, contentMD5 string, signedAt time.Time, ttl time.Duration) (*Presigned, error)
	PresignDelete(ctx context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error)
}

// Presigned is a backend's raw signing result.
type Presigned struct {
	URL    string
	Method string
	Header http.Header
}

// ContentMD5 returns the base64 MD5 digest of payload as sent in a Content-MD5 header.
func ContentMD5(payload []byte) string {
	sum := md5.Sum(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
