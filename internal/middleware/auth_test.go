package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "")
}

func newTestRouter(keys []string) *gin.Engine {
	r := gin.New()
	r.Use(NewAPIKeyAuth(keys).Middleware())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "valid X-API-Key",
			keys:       []string{"secret-key"},
			headers:    map[string]string{"X-API-Key": "secret-key"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			keys:       []string{"secret-key"},
			headers:    map[string]string{"Authorization": "Bearer secret-key"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key",
			keys:       []string{"secret-key"},
			headers:    map[string]string{"X-API-Key": "nope"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing key",
			keys:       []string{"secret-key"},
			headers:    map[string]string{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no keys configured rejects everything",
			keys:       nil,
			headers:    map[string]string{"X-API-Key": "anything"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty configured key is ignored",
			keys:       []string{""},
			headers:    map[string]string{"X-API-Key": ""},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.keys)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
