package presign

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/objgate/server/internal/shared/objectid"
)

// DefaultExpiry is the lifetime of a signed URL when none is configured.
const DefaultExpiry = 10 * time.Minute

// SignRecorder records signing attempts.
type SignRecorder interface {
	RecordSign(operation string, err error)
}

// SignerConfig configures a Signer.
type SignerConfig struct {
	Expiry time.Duration
	Clock  func() time.Time
}

// Signer produces signed URLs for single object operations.
type Signer struct {
	backend Backend
	expiry  time.Duration
	clock   func() time.Time
	metrics SignRecorder
	logger  *zap.Logger
}

// NewSigner creates a Signer. rec may be nil.
func NewSigner(backend Backend, cfg SignerConfig, logger *zap.Logger, rec SignRecorder) *Signer {
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Signer{
		backend: backend,
		expiry:  cfg.Expiry,
		clock:   cfg.Clock,
		metrics: rec,
		logger:  logger,
	}
}

// Expiry returns the lifetime of every URL this signer issues.
func (s *Signer) Expiry() time.Duration {
	return s.expiry
}

// Sign returns a URL valid for exactly one operation until SignedAt+Expiry.
// Write URLs bind the payload's Content-MD5, so other bytes are rejected by the endpoint.
func (s *Signer) Sign(ctx context.Context, req SignRequest) (*SignedURL, error) {
	if err := checkSignRequest(req); err != nil {
		return nil, err
	}

	// SigV4 dates have second precision.
	signedAt := s.clock().UTC().Truncate(time.Second)

	var (
		p   *Presigned
		err error
	)
	switch req.Operation {
	case OperationRead:
		p, err = s.backend.PresignRead(ctx, req.BucketName, req.ObjectKey, signedAt, s.expiry)
	case OperationWrite:
		p, err = s.backend.PresignWrite(ctx, req.BucketName, req.ObjectKey, ContentMD5(req.Payload), signedAt, s.expiry)
	case OperationDelete:
		p, err = s.backend.PresignDelete(ctx, req.BucketName, req.ObjectKey, signedAt, s.expiry)
	}
	if err == nil && (p == nil || p.URL == "") {
		err = ErrEmptySignedURL
	}
	s.record(req.Operation, err)

	if err != nil {
		s.logger.Error("failed to sign url",
			zap.Stringer("operation", req.Operation),
			zap.String("bucket", req.BucketName),
			zap.String("key", req.ObjectKey),
			zap.Error(err),
		)
		return nil, &SigningError{
			Operation: req.Operation,
			Bucket:    req.BucketName,
			Key:       req.ObjectKey,
			Err:       err,
		}
	}

	method := p.Method
	if method == "" {
		method = req.Operation.Method()
	}

	signed := &SignedURL{
		URL:       p.URL,
		Method:    method,
		Header:    p.Header.Clone(),
		Operation: req.Operation,
		Bucket:    req.BucketName,
		Key:       req.ObjectKey,
		SignedAt:  signedAt,
		ExpiresAt: signedAt.Add(s.expiry),
	}

	s.logger.Info("presigned url created",
		zap.Stringer("operation", req.Operation),
		zap.String("bucket", req.BucketName),
		zap.String("key", req.ObjectKey),
		zap.Time("expires_at", signed.ExpiresAt),
		zap.String("url", signed.URL),
	)

	return signed, nil
}

func (s *Signer) record(op OperationKind, err error) {
	if s.metrics != nil {
		s.metrics.RecordSign(op.String(), err)
	}
}

func checkSignRequest(req SignRequest) error {
	if err := objectid.Validate(req.BucketName, req.ObjectKey); err != nil {
		return err
	}
	if !req.Operation.Valid() {
		return fmt.Errorf("%w: unknown operation %d", ErrInvalidArgument, int(req.Operation))
	}
	if req.Operation == OperationWrite && req.Payload == nil {
		return fmt.Errorf("%w: write requires a payload", ErrInvalidArgument)
	}
	if req.Operation != OperationWrite && req.Payload != nil {
		return fmt.Errorf("%w: payload is only allowed for write", ErrInvalidArgument)
	}
	return nil
}
