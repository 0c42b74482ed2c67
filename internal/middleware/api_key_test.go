package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func schedulerTestRouter(configuredKey string) (*httptest.ResponseRecorder, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(SchedulerAuth(configuredKey))
	r.GET("/run", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return w, r
}

func TestSchedulerAuth_HeaderKey(t *testing.T) {
	w, r := schedulerTestRouter("secret-key")
	req, _ := http.NewRequest("GET", "/run", nil)
	req.Header.Set("X-API-Key", "secret-key")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSchedulerAuth_QueryKey(t *testing.T) {
	w, r := schedulerTestRouter("secret-key")
	req, _ := http.NewRequest("GET", "/run?api_key=secret-key", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSchedulerAuth_WrongKey(t *testing.T) {
	w, r := schedulerTestRouter("secret-key")
	req, _ := http.NewRequest("GET", "/run", nil)
	req.Header.Set("X-API-Key", "guess")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSchedulerAuth_MissingKey(t *testing.T) {
	w, r := schedulerTestRouter("secret-key")
	req, _ := http.NewRequest("GET", "/run", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSchedulerAuth_UnconfiguredAlwaysDenies(t *testing.T) {
	w, r := schedulerTestRouter("")
	req, _ := http.NewRequest("GET", "/run", nil)
	req.Header.Set("X-API-Key", "")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
