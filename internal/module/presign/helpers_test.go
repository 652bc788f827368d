package presign

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func newTestS3Client(endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:                     "eu-north-1",
		Credentials:                credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
}

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	mu         sync.Mutex
	calls      []string
	contentMD5 string
	signedAt   time.Time
	ttl        time.Duration
	result     *Presigned
	err        error
}

func (b *fakeBackend) call(op, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, op)
	b.signedAt = signedAt
	b.ttl = ttl
	if b.err != nil {
		return nil, b.err
	}
	if b.result != nil {
		return b.result, nil
	}
	return &Presigned{
		URL:    fmt.Sprintf("https://storage.test/%s/%s?op=%s&t=%d", bucket, key, op, signedAt.UnixNano()),
		Method: map[string]string{"read": http.MethodGet, "write": http.MethodPut, "delete": http.MethodDelete}[op],
	}, nil
}

func (b *fakeBackend) PresignRead(_ context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	return b.call("read", bucket, key, signedAt, ttl)
}

func (b *fakeBackend) PresignWrite(_ context.Context, bucket, key, contentMD5 string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	b.mu.Lock()
	b.contentMD5 = contentMD5
	b.mu.Unlock()
	return b.call("write", bucket, key, signedAt, ttl)
}

func (b *fakeBackend) PresignDelete(_ context.Context, bucket, key string, signedAt time.Time, ttl time.Duration) (*Presigned, error) {
	return b.call("delete", bucket, key, signedAt, ttl)
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type signRecord struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu        sync.Mutex
	signs     []signRecord
	transfers []string // operation/result
	bytes     int64
}

func (r *fakeRecorder) RecordSign(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signs = append(r.signs, signRecord{operation, err})
}

func (r *fakeRecorder) RecordTransfer(operation, result string, n int64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, operation+"/"+result)
	r.bytes += n
}

// fakeStorage is an S3-like endpoint that stores objects in memory and
// rejects PUTs whose body does not match the Content-MD5 header.
// It does not verify signatures.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	requests []*http.Request
	status   int    // forced status, 0 means normal behaviour
	body     string // body sent with a forced status
}

func newFakeStorage(t *testing.T) (*fakeStorage, *httptest.Server) {
	t.Helper()
	fs := &fakeStorage{objects: map[string][]byte{}}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.requests = append(fs.requests, r.Clone(context.Background()))

	if fs.status != 0 {
		w.WriteHeader(fs.status)
		_, _ = io.WriteString(w, fs.body)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		sum := md5.Sum(data)
		if r.Header.Get("Content-MD5") != base64.StdEncoding.EncodeToString(sum[:]) {
			writeS3Error(w, http.StatusBadRequest, "BadDigest")
			return
		}
		fs.objects[key] = data
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := fs.objects[key]
		if !ok {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey")
			return
		}
		_, _ = w.Write(data)
	case http.MethodDelete:
		delete(fs.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (fs *fakeStorage) lastRequest() *http.Request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return nil
	}
	return fs.requests[len(fs.requests)-1]
}

func (fs *fakeStorage) requestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func (fs *fakeStorage) put(key string, data []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.objects[key] = data
}

func (fs *fakeStorage) get(key string) ([]byte, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.objects[key]
	return data, ok
}

func writeS3Error(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`, code, code)
}
