package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objgate/server/internal/shared/config"
)

const listBucketsXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Owner><ID>owner</ID></Owner>
  <Buckets><Bucket><Name>reports</Name><CreationDate>2026-01-01T00:00:00.000Z</CreationDate></Bucket></Buckets>
</ListAllMyBucketsResult>`

func newFakeStorage(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(listBucketsXML))
			return
		}
		w.WriteHeader(http.StatusNotImplemented)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(endpoint, driver string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxUploadSize: 1 << 20},
		Storage: config.StorageConfig{
			Driver:          driver,
			Endpoint:        endpoint,
			Region:          "eu-north-1",
			Credentials:     config.CredentialsStatic,
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY",
			UsePathStyle:    true,
		},
		Presign: config.PresignConfig{URLExpiry: 10 * time.Minute, StrictStatus: true},
		HTTPClient: config.HTTPClientConfig{
			ResponseTimeout: 5 * time.Second,
		},
		Breaker: config.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
		},
		Metrics: config.MetricsConfig{Enabled: true, Namespace: "objgate_test", Path: "/metrics"},
		Log:     config.LogConfig{Level: "error", Format: "json"},
	}
}

func newTestApp(t *testing.T, driver string) *App {
	t.Helper()
	storage := newFakeStorage(t)
	application, err := New(context.Background(), testConfig(storage.URL, driver))
	require.NoError(t, err)
	t.Cleanup(application.Stop)
	return application
}

func get(a *App, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestApp_Health(t *testing.T) {
	a := newTestApp(t, config.DriverS3)

	w := get(a, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status  string `json:"status"`
		Storage struct {
			Breaker string `json:"breaker"`
		} `json:"storage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "closed", body.Storage.Breaker)
}

func TestApp_Routes(t *testing.T) {
	a := newTestApp(t, config.DriverS3)

	t.Run("validation happens before storage", func(t *testing.T) {
		w := get(a, "/api/objects/info?bucketName=reports")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = get(a, "/api/objects/secured?objectKey=q1.csv")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bucket lookup", func(t *testing.T) {
		w := get(a, "/api/buckets?bucketName=reports")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"bucketName":"reports"`)
	})

	t.Run("presigned url", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/presigned-urls",
			strings.NewReader(`{"bucketName":"reports","objectKey":"q1.csv","operation":"read"}`))
		req.Header.Set("Content-Type", "application/json")
		a.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "X-Amz-Expires=600")
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(a, "/api/nope").Code)
	})
}

func TestApp_Metrics(t *testing.T) {
	a := newTestApp(t, config.DriverS3)
	get(a, "/health")

	w := get(a, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "objgate_test_http_requests_total")
	assert.Contains(t, w.Body.String(), "objgate_test_storage_breaker_state")
}

func TestApp_MinioDriver(t *testing.T) {
	a := newTestApp(t, config.DriverMinio)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presigned-urls",
		strings.NewReader(`{"bucketName":"reports","objectKey":"q1.csv","operation":"delete"}`))
	req.Header.Set("Content-Type", "application/json")
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"method":"DELETE"`)
}

func TestCORSConfig(t *testing.T) {
	cfg := corsConfig(config.CORSConfig{AllowOrigins: []string{"https://app.example.com"}})

	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}
