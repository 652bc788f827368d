package object

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/objgate/server/internal/infra/storage"
	"github.com/objgate/server/internal/shared/objectid"
)

// API is the part of *s3.Client the object service uses.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObjectTagging(ctx context.Context, params *s3.PutObjectTaggingInput, optFns ...func(*s3.Options)) (*s3.PutObjectTaggingOutput, error)
	GetObjectTagging(ctx context.Context, params *s3.GetObjectTaggingInput, optFns ...func(*s3.Options)) (*s3.GetObjectTaggingOutput, error)
}

var _ API = (*s3.Client)(nil)

// ServiceInterface defines direct object operations.
type ServiceInterface interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, bucket, key string) (*Object, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	GetObjectInfo(ctx context.Context, bucket, key string) (*ObjectInfo, error)
	AddTags(ctx context.Context, req *AddTagsRequest) error
	GetTags(ctx context.Context, bucket, key string) ([]Tag, error)
}

// Service performs object operations through the storage SDK.
type Service struct {
	api     API
	breaker *storage.Breaker
	logger  *zap.Logger
}

// NewService creates a new object service.
func NewService(api API, breaker *storage.Breaker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:     api,
		breaker: breaker,
		logger:  logger,
	}
}

var _ ServiceInterface = (*Service)(nil)

// PutObject stores body under key.
func (s *Service) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	if err := objectid.Validate(bucket, key); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	err := s.breaker.Do("put object", func() error {
		_, err := s.api.PutObject(ctx, input)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("object uploaded",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("size", len(body)),
	)
	return nil
}

// GetObject reads the whole object into memory.
func (s *Service) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}

	var obj *Object
	err := s.breaker.Do("get object", func() error {
		out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		obj = &Object{
			Body:          data,
			ContentType:   aws.ToString(out.ContentType),
			ContentLength: int64(len(data)),
			ETag:          aws.ToString(out.ETag),
			LastModified:  out.LastModified,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// DeleteObject removes key from bucket.
func (s *Service) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := objectid.Validate(bucket, key); err != nil {
		return err
	}

	err := s.breaker.Do("delete object", func() error {
		_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("object deleted", zap.String("bucket", bucket), zap.String("key", key))
	return nil
}

// GetObjectInfo returns head-object metadata.
func (s *Service) GetObjectInfo(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}

	var out *s3.HeadObjectOutput
	err := s.breaker.Do("head object", func() (err error) {
		out, err = s.api.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ObjectInfo{
		ObjectKey:     key,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
		ETag:          aws.ToString(out.ETag),
		Expiration:    aws.ToString(out.Expiration),
		Expires:       aws.ToString(out.ExpiresString),
		LastModified:  out.LastModified,
	}, nil
}

// AddTags replaces the object's tag set. An empty tag list is skipped.
func (s *Service) AddTags(ctx context.Context, req *AddTagsRequest) error {
	if err := objectid.Validate(req.BucketName, req.ObjectKey); err != nil {
		return err
	}
	if len(req.Tags) == 0 {
		s.logger.Warn("empty tags, skipping",
			zap.String("bucket", req.BucketName),
			zap.String("key", req.ObjectKey),
		)
		return nil
	}

	tagSet := make([]types.Tag, 0, len(req.Tags))
	for _, t := range req.Tags {
		tagSet = append(tagSet, types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)})
	}

	err := s.breaker.Do("put object tagging", func() error {
		_, err := s.api.PutObjectTagging(ctx, &s3.PutObjectTaggingInput{
			Bucket:  aws.String(req.BucketName),
			Key:     aws.String(req.ObjectKey),
			Tagging: &types.Tagging{TagSet: tagSet},
		})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("object tags added",
		zap.String("bucket", req.BucketName),
		zap.String("key", req.ObjectKey),
		zap.Int("count", len(tagSet)),
	)
	return nil
}

// GetTags returns the object's tag set.
func (s *Service) GetTags(ctx context.Context, bucket, key string) ([]Tag, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}

	var out *s3.GetObjectTaggingOutput
	err := s.breaker.Do("get object tagging", func() (err error) {
		out, err = s.api.GetObjectTagging(ctx, &s3.GetObjectTaggingInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(out.TagSet))
	for _, t := range out.TagSet {
		tags = append(tags, Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return tags, nil
}
