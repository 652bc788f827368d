package bucket

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/objgate/server/internal/infra/storage"
	"github.com/objgate/server/internal/shared/objectid"
)

// API is the part of *s3.Client the bucket service uses.
type API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	PutBucketVersioning(ctx context.Context, params *s3.PutBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.PutBucketVersioningOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var _ API = (*s3.Client)(nil)

// ServiceInterface defines bucket operations.
type ServiceInterface interface {
	CreateBucket(ctx context.Context, name string) (*CreateBucketResult, error)
	GetBucket(ctx context.Context, name string) (*BucketSummary, error)
	UpdateVersioning(ctx context.Context, name, status string) error
	DeleteBucket(ctx context.Context, name string) error
	GetBucketInfo(ctx context.Context, name string) (*BucketInfo, error)
}

// Service manages buckets.
type Service struct {
	api     API
	breaker *storage.Breaker
	region  string
	logger  *zap.Logger
}

// NewService creates a new bucket service. region is used as the location constraint.
func NewService(api API, breaker *storage.Breaker, region string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:     api,
		breaker: breaker,
		region:  region,
		logger:  logger,
	}
}

var _ ServiceInterface = (*Service)(nil)

// CreateBucket creates a bucket in the configured region.
func (s *Service) CreateBucket(ctx context.Context, name string) (*CreateBucketResult, error) {
	if err := objectid.ValidateBucket(name); err != nil {
		return nil, err
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	// us-east-1 rejects an explicit constraint.
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	var out *s3.CreateBucketOutput
	err := s.breaker.Do("create bucket", func() (err error) {
		out, err = s.api.CreateBucket(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	requestID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
	s.logger.Info("bucket created", zap.String("bucket", name), zap.String("request_id", requestID))

	return &CreateBucketResult{
		BucketName: name,
		RequestID:  requestID,
		Location:   aws.ToString(out.Location),
	}, nil
}

// GetBucket looks the bucket up in the account's bucket list.
func (s *Service) GetBucket(ctx context.Context, name string) (*BucketSummary, error) {
	if err := objectid.ValidateBucket(name); err != nil {
		return nil, err
	}

	var found *types.Bucket
	err := s.breaker.Do("list buckets", func() error {
		p := s3.NewListBucketsPaginator(s.api, &s3.ListBucketsInput{Prefix: aws.String(name)})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return err
			}
			for i := range page.Buckets {
				if aws.ToString(page.Buckets[i].Name) == name {
					found = &page.Buckets[i]
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}

	return &BucketSummary{
		BucketName:   name,
		CreationDate: aws.ToTime(found.CreationDate),
	}, nil
}

// UpdateVersioning sets the bucket's versioning status to Enabled or Suspended.
func (s *Service) UpdateVersioning(ctx context.Context, name, status string) error {
	if err := objectid.ValidateBucket(name); err != nil {
		return err
	}
	vs, err := parseVersioningStatus(status)
	if err != nil {
		return err
	}

	err = s.breaker.Do("put bucket versioning", func() error {
		_, err := s.api.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
			Bucket:                  aws.String(name),
			VersioningConfiguration: &types.VersioningConfiguration{Status: vs},
		})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("bucket versioning updated", zap.String("bucket", name), zap.String("status", string(vs)))
	return nil
}

// DeleteBucket deletes an empty bucket.
func (s *Service) DeleteBucket(ctx context.Context, name string) error {
	if err := objectid.ValidateBucket(name); err != nil {
		return err
	}

	err := s.breaker.Do("delete bucket", func() error {
		_, err := s.api.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("bucket deleted", zap.String("bucket", name))
	return nil
}

// GetBucketInfo returns the bucket's region and location.
func (s *Service) GetBucketInfo(ctx context.Context, name string) (*BucketInfo, error) {
	if err := objectid.ValidateBucket(name); err != nil {
		return nil, err
	}

	var out *s3.HeadBucketOutput
	err := s.breaker.Do("head bucket", func() (err error) {
		out, err = s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BucketInfo{
		BucketName:         name,
		BucketRegion:       aws.ToString(out.BucketRegion),
		BucketLocationName: aws.ToString(out.BucketLocationName),
		LocationType:       string(out.BucketLocationType),
	}, nil
}

func parseVersioningStatus(status string) (types.BucketVersioningStatus, error) {
	for _, vs := range types.BucketVersioningStatus("").Values() {
		if strings.EqualFold(status, string(vs)) {
			return vs, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidVersioningStatus, status)
}
