package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func newJSONRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = newJSONRequest(t, `{"email":"not-an-email","password":"abc"}`)

	var s sample
	err := c.ShouldBindJSON(&s)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "min length 6", details["password"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = newJSONRequest(t, `{"email":`)

	var s sample
	err := c.ShouldBindJSON(&s)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "invalid json", details["payload"])
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
