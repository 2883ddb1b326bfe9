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

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/x", h)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestSuccess(t *testing.T) {
	w := perform(func(c *gin.Context) { Success(c, []int{1, 2}) })

	assert.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestCreated(t *testing.T) {
	w := perform(func(c *gin.Context) { Created(c, "/api/books/7", gin.H{"id": 7}) })

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/books/7", w.Header().Get("Location"))
}

func TestNoContent(t *testing.T) {
	w := perform(func(c *gin.Context) { NoContent(c) })

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError(t *testing.T) {
	t.Run("内部错误不泄露原因", func(t *testing.T) {
		cause := errors.New("dial tcp 10.0.0.1:3306: connection refused")
		w := perform(func(c *gin.Context) { Error(c, apperrors.WrapDB(cause, "Internal server error")) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
		assert.Contains(t, w.Body.String(), "Internal server error")
	})

	t.Run("普通error包装为500", func(t *testing.T) {
		w := perform(func(c *gin.Context) { Error(c, errors.New("boom")) })

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("业务错误码映射状态码", func(t *testing.T) {
		w := perform(func(c *gin.Context) { Error(c, apperrors.ErrInvalidToken) })
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = perform(func(c *gin.Context) { Error(c, apperrors.ErrTooManyRequests) })
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}
