package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth_WhenCalled_ThenReturnsOK(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(logging.NewNoOpLogger())
	r := gin.New()
	r.GET("/health", h.Health)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), "ppe-sentinel")
}
