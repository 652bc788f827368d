package presign

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Transfer results recorded in metrics.
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

var errNilURL = fmt.Errorf("%w: nil signed url", ErrInvalidArgument)

// TransferRecorder records executed transfers.
type TransferRecorder interface {
	RecordTransfer(operation, result string, bytes int64, duration time.Duration)
}

// Executor performs one HTTP request against a signed URL.
// Transport failures are never retried.
type Executor struct {
	newClient func() *http.Client
	metrics   TransferRecorder
	logger    *zap.Logger
}

// NewExecutor creates an Executor. newClient is called once per transfer
// and the client is released when the transfer returns. rec may be nil.
func NewExecutor(newClient func() *http.Client, logger *zap.Logger, rec TransferRecorder) *Executor {
	if newClient == nil {
		newClient = func() *http.Client { return &http.Client{} }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		newClient: newClient,
		metrics:   rec,
		logger:    logger,
	}
}

// ExecuteUpload PUTs payload to u. Only 200 counts as success.
// Other statuses are logged and reported through the outcome, not as an error.
func (e *Executor) ExecuteUpload(ctx context.Context, u *SignedURL, payload []byte) (*TransferOutcome, error) {
	if u == nil {
		return nil, errNilURL
	}
	if payload == nil {
		payload = []byte{}
	}

	start := time.Now()
	res, err := e.do(ctx, u, payload)
	if err != nil {
		e.record(u, resultError, 0, start)
		return nil, err
	}

	outcome := &TransferOutcome{
		Operation:  u.Operation,
		Success:    res.statusCode == http.StatusOK,
		StatusCode: res.statusCode,
		Status:     res.statusText,
	}
	if !outcome.Success {
		e.logRejected(u, res)
		e.record(u, resultRejected, 0, start)
		return outcome, nil
	}

	outcome.BytesTransferred = int64(len(payload))
	e.record(u, resultOK, outcome.BytesTransferred, start)
	e.logger.Info("presigned upload completed",
		zap.String("bucket", u.Bucket),
		zap.String("key", u.Key),
		zap.Int("status", res.statusCode),
		zap.Int64("bytes", outcome.BytesTransferred),
	)
	return outcome, nil
}

// ExecuteDownload GETs u and returns the full body.
// A successful response without a body yields an empty, non-nil Body.
// Any non-2xx status is a TransferError.
func (e *Executor) ExecuteDownload(ctx context.Context, u *SignedURL) (*TransferOutcome, error) {
	if u == nil {
		return nil, errNilURL
	}
	start := time.Now()
	res, err := e.do(ctx, u, nil)
	if err != nil {
		e.record(u, resultError, 0, start)
		return nil, err
	}

	if !is2xx(res.statusCode) {
		e.logRejected(u, res)
		e.record(u, resultRejected, 0, start)
		return nil, e.statusError(u, res)
	}

	body := res.body
	if len(body) == 0 {
		e.logger.Error("presigned download returned no body",
			zap.String("bucket", u.Bucket),
			zap.String("key", u.Key),
			zap.Int("status", res.statusCode),
		)
		body = []byte{}
	}

	e.record(u, resultOK, int64(len(body)), start)
	return &TransferOutcome{
		Operation:        u.Operation,
		Success:          true,
		StatusCode:       res.statusCode,
		Status:           res.statusText,
		Body:             body,
		BytesTransferred: int64(len(body)),
	}, nil
}

// ExecuteDelete DELETEs u. A missing body is normal.
// Non-2xx statuses are logged and reported through the outcome, not as an error.
func (e *Executor) ExecuteDelete(ctx context.Context, u *SignedURL) (*TransferOutcome, error) {
	if u == nil {
		return nil, errNilURL
	}
	start := time.Now()
	res, err := e.do(ctx, u, nil)
	if err != nil {
		e.record(u, resultError, 0, start)
		return nil, err
	}

	outcome := &TransferOutcome{
		Operation:  u.Operation,
		Success:    is2xx(res.statusCode),
		StatusCode: res.statusCode,
		Status:     res.statusText,
	}
	if !outcome.Success {
		e.logRejected(u, res)
		e.record(u, resultRejected, 0, start)
		return outcome, nil
	}

	if len(res.body) > 0 {
		e.logger.Info("presigned delete confirmed",
			zap.String("bucket", u.Bucket),
			zap.String("key", u.Key),
			zap.ByteString("response", res.body),
		)
	}
	e.record(u, resultOK, 0, start)
	return outcome, nil
}

type transferResponse struct {
	statusCode int
	statusText string
	body       []byte
}

func (e *Executor) do(ctx context.Context, u *SignedURL, payload []byte) (*transferResponse, error) {
	client := e.newClient()
	defer client.CloseIdleConnections()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, u.Method, u.URL, body)
	if err != nil {
		return nil, e.transferError(u, 0, err)
	}
	for name, values := range u.Header {
		// Host comes from the URL.
		if http.CanonicalHeaderKey(name) == "Host" {
			continue
		}
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, e.transferError(u, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, e.transferError(u, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	return &transferResponse{
		statusCode: resp.StatusCode,
		statusText: statusText(resp),
		body:       data,
	}, nil
}

func (e *Executor) transferError(u *SignedURL, status int, err error) error {
	e.logger.Error("presigned transfer failed",
		zap.Stringer("operation", u.Operation),
		zap.String("bucket", u.Bucket),
		zap.String("key", u.Key),
		zap.Error(err),
	)
	return &TransferError{
		Operation:  u.Operation,
		Bucket:     u.Bucket,
		Key:        u.Key,
		StatusCode: status,
		Err:        err,
	}
}

func (e *Executor) statusError(u *SignedURL, res *transferResponse) error {
	reason := res.statusText
	if code := storageErrorCode(res.body); code != "" {
		reason = code
	}
	return &TransferError{
		Operation:  u.Operation,
		Bucket:     u.Bucket,
		Key:        u.Key,
		StatusCode: res.statusCode,
		Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, reason),
	}
}

func (e *Executor) logRejected(u *SignedURL, res *transferResponse) {
	e.logger.Error("presigned transfer rejected",
		zap.Stringer("operation", u.Operation),
		zap.String("bucket", u.Bucket),
		zap.String("key", u.Key),
		zap.Int("status", res.statusCode),
		zap.String("status_text", res.statusText),
		zap.String("error_code", storageErrorCode(res.body)),
	)
}

func (e *Executor) record(u *SignedURL, result string, n int64, start time.Time) {
	if e.metrics != nil {
		e.metrics.RecordTransfer(u.Operation.String(), result, n, time.Since(start))
	}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// statusText returns the reason phrase, e.g. "Forbidden" for "403 Forbidden".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// storageErrorCode extracts <Code> from an S3 error document.
func storageErrorCode(body []byte) string {
	if len(body) == 0 || !bytes.Contains(body, []byte("<Error")) {
		return ""
	}
	var doc struct {
		Code string `xml:"Code"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return ""
	}
	return doc.Code
}
