package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func reviewerTestRouter(role string) (*httptest.ResponseRecorder, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		})
	}
	r.Use(RequireReviewer())
	r.POST("/approve", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return w, r
}

func TestRequireReviewer_AllowsElevatedRoles(t *testing.T) {
	for _, role := range []string{"editor", "pastor", "admin"} {
		w, r := reviewerTestRouter(role)
		req, _ := http.NewRequest("POST", "/approve", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("role %s: expected 200, got %d", role, w.Code)
		}
	}
}

func TestRequireReviewer_DeniesMember(t *testing.T) {
	w, r := reviewerTestRouter("member")
	req, _ := http.NewRequest("POST", "/approve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireReviewer_DeniesMissingRole(t *testing.T) {
	w, r := reviewerTestRouter("")
	req, _ := http.NewRequest("POST", "/approve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
