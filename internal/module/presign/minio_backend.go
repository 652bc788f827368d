package presign

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioPresigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	PresignHeader(ctx context.Context, method, bucketName, objectName string, expires time.Duration, reqParams url.Values, extraHeaders http.Header) (*url.URL, error)
}

var _ minioPresigner = (*minio.Client)(nil)

// MinioBackend signs URLs through minio-go for S3-compatible endpoints.
// minio-go signs with its own clock; signedAt is not forwarded.
type MinioBackend struct {
	client minioPresigner
}

// NewMinioBackend creates a MinioBackend.
func NewMinioBackend(client *minio.Client) *MinioBackend {
	return &MinioBackend{client: client}
}

func (b *MinioBackend) PresignRead(ctx context.Context, bucket, key string, _ time.Time, ttl time.Duration) (*Presigned, error) {
	u, err := b.client.PresignedGetObject(ctx, bucket, key, ttl, nil)
	if err != nil {
		return nil, err
	}
	return fromURL(u, http.MethodGet, nil), nil
}

func (b *MinioBackend) PresignWrite(ctx context.Context, bucket, key, contentMD5 string, _ time.Time, ttl time.Duration) (*Presigned, error) {
	header := http.Header{}
	header.Set("Content-Md5", contentMD5)

	u, err := b.client.PresignHeader(ctx, http.MethodPut, bucket, key, ttl, nil, header)
	if err != nil {
		return nil, err
	}
	return fromURL(u, http.MethodPut, header), nil
}

func (b *MinioBackend) PresignDelete(ctx context.Context, bucket, key string, _ time.Time, ttl time.Duration) (*Presigned, error) {
	u, err := b.client.PresignHeader(ctx, http.MethodDelete, bucket, key, ttl, nil, nil)
	if err != nil {
		return nil, err
	}
	return fromURL(u, http.MethodDelete, nil), nil
}

func fromURL(u *url.URL, method string, header http.Header) *Presigned {
	if u == nil {
		return nil
	}
	return &Presigned{URL: u.String(), Method: method, Header: header}
}
