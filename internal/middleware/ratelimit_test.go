package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/generate", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func hit(router *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate", nil)
	req.RemoteAddr = addr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_WithinBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(5, 3))

	for i := 0; i < 3; i++ {
		if code := hit(router, "203.0.113.5:40001"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, expected %d", i+1, code, http.StatusOK)
		}
	}
}

func TestRateLimiter_ThrottlesBeyondBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(0.5, 2))

	hit(router, "203.0.113.9:40001")
	hit(router, "203.0.113.9:40001")
	if code := hit(router, "203.0.113.9:40001"); code != http.StatusTooManyRequests {
		t.Errorf("third rapid request: status = %d, expected %d", code, http.StatusTooManyRequests)
	}
}

func TestRateLimiter_BucketsPerClientIP(t *testing.T) {
	router := limitedRouter(NewRateLimiter(0.5, 1))

	if code := hit(router, "198.51.100.1:40001"); code != http.StatusOK {
		t.Fatalf("first client: status = %d, expected %d", code, http.StatusOK)
	}
	if code := hit(router, "198.51.100.1:40002"); code != http.StatusTooManyRequests {
		t.Errorf("first client second request: status = %d, expected %d", code, http.StatusTooManyRequests)
	}

	// A different client keeps its own full bucket.
	if code := hit(router, "198.51.100.2:40001"); code != http.StatusOK {
		t.Errorf("second client: status = %d, expected %d", code, http.StatusOK)
	}
}
