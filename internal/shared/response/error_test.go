package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/objgate/server/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errSpecial = errors.New("special")

func decode(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleError(t *testing.T) {
	special := func(err error) *apperrors.AppError {
		if errors.Is(err, errSpecial) {
			return apperrors.Conflict("special conflict")
		}
		return nil
	}

	t.Run("uses matching mapping", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleError(c, errSpecial, special)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "special conflict", decode(t, w).Error.Message)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("passes AppError through", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleError(c, apperrors.NotFound("bucket"), special)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
	})

	t.Run("hides unknown errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleError(c, errors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "secret detail")
	})
}

func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "missing file")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing file", decode(t, w).Error.Message)
	assert.True(t, c.IsAborted())
}
