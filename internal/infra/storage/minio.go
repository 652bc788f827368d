package storage

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/objgate/server/internal/shared/config"
)

// NewMinioClient creates a minio client for S3-compatible endpoints.
// The region is fixed so presigning never looks up the bucket location.
func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio: endpoint is required")
	}

	u, err := url.Parse(EndpointURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("minio: parse endpoint: %w", err)
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:        miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		Secure:       u.Scheme == "https",
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: new client: %w", err)
	}
	return client, nil
}
