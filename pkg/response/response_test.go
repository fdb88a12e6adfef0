package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/", handlers...)
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, w.Body.String())
}

func TestErrorEnvelopeCarriesCode(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		NotFound(c, "no such story")
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"no such story"}}`, w.Body.String())
}

func TestAbortUnauthorizedStopsChain(t *testing.T) {
	reached := false
	w := perform(t,
		func(c *gin.Context) {
			AbortUnauthorized(c, "access token required")
		},
		func(c *gin.Context) {
			reached = true
		},
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"access token required"}}`, w.Body.String())
}
