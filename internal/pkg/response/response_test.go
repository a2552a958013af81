package response

import (
	"Inkstone/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fn func(c *gin.Context)) map[string]interface{} {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	body := record(func(c *gin.Context) {
		Success(c, map[string]string{"k": "v"})
	})

	assert.EqualValues(t, Ok, body["code"])
	assert.Equal(t, "success", body["message"])
	require.NotNil(t, body["data"])
}

func TestErrorMapsBusinessCode(t *testing.T) {
	body := record(func(c *gin.Context) {
		Error(c, service.ErrPostNotFound)
	})

	assert.EqualValues(t, NotFound, body["code"])
	assert.Equal(t, service.ErrPostNotFound.Error(), body["message"])
}

func TestErrorUnknownFallsBackToInternal(t *testing.T) {
	body := record(func(c *gin.Context) {
		Error(c, assert.AnError)
	})

	assert.EqualValues(t, InternalServerError, body["code"])
}
