package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/auth"
	"github.com/leirbagxis/ChannelGate/pkg/config"
	"github.com/stretchr/testify/assert"
)

func setupProtected() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", auth.ApiKeyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestApiKeyRequired(t *testing.T) {
	orig := config.ApiKey
	config.ApiKey = "secret"
	defer func() { config.ApiKey = orig }()

	r := setupProtected()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("x-api-key", "wrong")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("x-api-key", "secret")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApiKeyDisabled(t *testing.T) {
	orig := config.ApiKey
	config.ApiKey = ""
	defer func() { config.ApiKey = orig }()

	r := setupProtected()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
