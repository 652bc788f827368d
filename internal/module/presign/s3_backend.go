package presign

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPresigner is the part of *s3.PresignClient the backend uses.
type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignDeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var _ objectPresigner = (*s3.PresignClient)(nil)

// S3Backend signs URLs with SigV4 through the AWS SDK.
type S3Backend struct {
	presigner objectPresigner
	signer    *v4.Signer
}

// NewS3Backend creates an S3Backend for client.
func NewS3Backend(client *s3.Client) *S3Backend {
	return &S3Backend{
		presigner: s3.NewPresignClient(client),
		signer:    v4.NewSigner(),
	}
}

func (b *S3Backend) PresignRead(ctx context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	req, err := b.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, b.options(signedAt, ttl))
	if err != nil {
		return nil, err
	}
	return fromSDK(req), nil
}

func (b *S3Backend) PresignWrite(ctx context.Context, bucket, key, contentMD5 string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	req, err := b.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		ContentMD5: aws.String(contentMD5),
	}, b.options(signedAt, ttl))
	if err != nil {
		return nil, err
	}
	return fromSDK(req), nil
}

func (b *S3Backend) PresignDelete(ctx context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	req, err := b.presigner.PresignDeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, b.options(signedAt, ttl))
	if err != nil {
		return nil, err
	}
	return fromSDK(req), nil
}

func (b *S3Backend) options(signedAt time.Time, ttl time.Duration) func(*s3.PresignOptions) {
	return func(o *s3.PresignOptions) {
		o.Expires = ttl
		o.Presigner = pinnedPresigner{signer: b.signer, at: signedAt}
	}
}

func fromSDK(req *v4.PresignedHTTPRequest) *Presigned {
	if req == nil {
		return nil
	}
	return &Presigned{
		URL:    req.URL,
		Method: req.Method,
		Header: req.SignedHeader,
	}
}

// pinnedPresigner signs at a fixed instant instead of the SDK clock,
// so X-Amz-Date matches the SignedAt recorded on the URL.
type pinnedPresigner struct {
	signer *v4.Signer
	at     time.Time
}

func (p pinnedPresigner) PresignHTTP(
	ctx context.Context, credentials aws.Credentials, r *http.Request,
	payloadHash string, service string, region string, _ time.Time,
	optFns ...func(*v4.SignerOptions),
) (string, http.Header, error) {
	return p.signer.PresignHTTP(ctx, credentials, r, payloadHash, service, region, p.at, optFns...)
}
