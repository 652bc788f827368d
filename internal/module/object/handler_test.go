package object

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/objgate/server/internal/infra/storage"
	"github.com/objgate/server/internal/shared/objectid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	return m.Called(ctx, bucket, key, body, contentType).Error(0)
}

func (m *MockService) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Object), args.Error(1)
}

func (m *MockService) DeleteObject(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *MockService) GetObjectInfo(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ObjectInfo), args.Error(1)
}

func (m *MockService) AddTags(ctx context.Context, req *AddTagsRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockService) GetTags(ctx context.Context, bucket, key string) ([]Tag, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Tag), args.Error(1)
}

func serve(svc ServiceInterface, maxSize int64, req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(svc, maxSize).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartRequest(t *testing.T, target string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="q1.csv"`)
	h.Set("Content-Type", "text/csv")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_GetObject(t *testing.T) {
	svc := new(MockService)
	svc.On("GetObject", mock.Anything, "reports", "2026/q1.csv").
		Return(&Object{Body: []byte("a,b,c"), ContentType: "text/csv", ETag: `"abc"`}, nil)

	w := serve(svc, 0, httptest.NewRequest(http.MethodGet, "/api/objects?bucketName=reports&objectKey=2026/q1.csv", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a,b,c", w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="q1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, `"abc"`, w.Header().Get("ETag"))
}

func TestHandler_PutObject(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PutObject", mock.Anything, "reports", "q1.csv", []byte("a,b,c"), "text/csv").Return(nil)

		w := serve(svc, 1<<20, multipartRequest(t, "/api/objects?bucketName=reports&objectKey=q1.csv", []byte("a,b,c")))

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		svc := new(MockService)
		req := httptest.NewRequest(http.MethodPost, "/api/objects?bucketName=reports&objectKey=q1.csv", nil)

		w := serve(svc, 1<<20, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("too large", func(t *testing.T) {
		svc := new(MockService)

		w := serve(svc, 4, multipartRequest(t, "/api/objects?bucketName=reports&objectKey=q1.csv", []byte("a,b,c")))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestHandler_AddTags(t *testing.T) {
	svc := new(MockService)
	svc.On("AddTags", mock.Anything, &AddTagsRequest{
		BucketName: "reports",
		ObjectKey:  "q1.csv",
		Tags:       []Tag{{Key: "team", Value: "finance"}},
	}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/objects/tags?bucketName=reports&objectKey=q1.csv",
		bytes.NewBufferString(`{"tags":[{"key":"team","value":"finance"}]}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(svc, 0, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_GetTags(t *testing.T) {
	svc := new(MockService)
	svc.On("GetTags", mock.Anything, "reports", "q1.csv").Return([]Tag{{Key: "team", Value: "finance"}}, nil)

	w := serve(svc, 0, httptest.NewRequest(http.MethodGet, "/api/objects/tags?bucketName=reports&objectKey=q1.csv", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp TagsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reports", resp.BucketName)
	assert.Equal(t, []Tag{{Key: "team", Value: "finance"}}, resp.Tags)
}

func TestHandler_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid argument", objectid.ErrInvalidArgument, http.StatusBadRequest},
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"unavailable", storage.ErrUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("GetObjectInfo", mock.Anything, "reports", "q1.csv").Return(nil, tt.err)
			svc.On("DeleteObject", mock.Anything, "reports", "q1.csv").Return(tt.err)

			w := serve(svc, 0, httptest.NewRequest(http.MethodGet, "/api/objects/info?bucketName=reports&objectKey=q1.csv", nil))
			assert.Equal(t, tt.status, w.Code)

			w = serve(svc, 0, httptest.NewRequest(http.MethodDelete, "/api/objects?bucketName=reports&objectKey=q1.csv", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("delete succeeds", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteObject", mock.Anything, "reports", "q1.csv").Return(nil)

		w := serve(svc, 0, httptest.NewRequest(http.MethodDelete, "/api/objects?bucketName=reports&objectKey=q1.csv", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
