package presign

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/objgate/server/internal/shared/objectid"
)

// ServiceInterface defines the presigned flows exposed to the HTTP layer.
type ServiceInterface interface {
	UploadViaPresignedURL(ctx context.Context, bucket, key string, payload []byte) (*TransferOutcome, error)
	DownloadViaPresignedURL(ctx context.Context, bucket, key string) ([]byte, error)
	DeleteViaPresignedURL(ctx context.Context, bucket, key string) (*TransferOutcome, error)
	GenerateURL(ctx context.Context, req SignRequest) (*SignedURL, error)
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// StrictStatus turns unsuccessful upload and delete outcomes into TransferErrors.
	StrictStatus bool
}

// Service validates, signs and executes presigned transfers.
type Service struct {
	signer   *Signer
	executor *Executor
	strict   bool
	logger   *zap.Logger
}

// NewService creates a new presign service.
func NewService(signer *Signer, executor *Executor, cfg ServiceConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		signer:   signer,
		executor: executor,
		strict:   cfg.StrictStatus,
		logger:   logger,
	}
}

var _ ServiceInterface = (*Service)(nil)

// UploadViaPresignedURL signs a write URL bound to payload and PUTs payload to it.
func (s *Service) UploadViaPresignedURL(ctx context.Context, bucket, key string, payload []byte) (*TransferOutcome, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []byte{}
	}

	u, err := s.signer.Sign(ctx, SignRequest{
		BucketName: bucket,
		ObjectKey:  key,
		Operation:  OperationWrite,
		Payload:    payload,
	})
	if err != nil {
		return nil, err
	}

	outcome, err := s.executor.ExecuteUpload(ctx, u, payload)
	if err != nil {
		return nil, err
	}
	return s.checkOutcome(u, outcome)
}

// DownloadViaPresignedURL signs a read URL and returns the object's bytes.
func (s *Service) DownloadViaPresignedURL(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}

	u, err := s.signer.Sign(ctx, SignRequest{
		BucketName: bucket,
		ObjectKey:  key,
		Operation:  OperationRead,
	})
	if err != nil {
		return nil, err
	}

	outcome, err := s.executor.ExecuteDownload(ctx, u)
	if err != nil {
		return nil, err
	}
	return outcome.Body, nil
}

// DeleteViaPresignedURL signs a delete URL and executes it.
func (s *Service) DeleteViaPresignedURL(ctx context.Context, bucket, key string) (*TransferOutcome, error) {
	if err := objectid.Validate(bucket, key); err != nil {
		return nil, err
	}

	u, err := s.signer.Sign(ctx, SignRequest{
		BucketName: bucket,
		ObjectKey:  key,
		Operation:  OperationDelete,
	})
	if err != nil {
		return nil, err
	}

	outcome, err := s.executor.ExecuteDelete(ctx, u)
	if err != nil {
		return nil, err
	}
	return s.checkOutcome(u, outcome)
}

// GenerateURL signs req without executing it.
func (s *Service) GenerateURL(ctx context.Context, req SignRequest) (*SignedURL, error) {
	if err := objectid.Validate(req.BucketName, req.ObjectKey); err != nil {
		return nil, err
	}
	return s.signer.Sign(ctx, req)
}

func (s *Service) checkOutcome(u *SignedURL, outcome *TransferOutcome) (*TransferOutcome, error) {
	if outcome.Success || !s.strict {
		return outcome, nil
	}
	s.logger.Warn("transfer rejected in strict mode",
		zap.String("operation", u.Operation.String()),
		zap.String("bucket", u.Bucket),
		zap.String("key", u.Key),
		zap.Int("status", outcome.StatusCode),
	)
	return nil, &TransferError{
		Operation:  u.Operation,
		Bucket:     u.Bucket,
		Key:        u.Key,
		StatusCode: outcome.StatusCode,
		Err:        fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, outcome.StatusCode, outcome.Status),
	}
}
