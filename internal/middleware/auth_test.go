package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fitforge/fitforge/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-key")
}

func protectedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/generate", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetRole(c),
		})
	})
	return router
}

func TestAuthRequired_RejectsBadHeaders(t *testing.T) {
	router := protectedRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "sometoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/generate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("header %q: status = %d, expected %d", tt.header, w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthRequired_PassesClaimsThrough(t *testing.T) {
	token, _ := utils.GenerateToken(9, "gymowner", "user", 1)

	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/generate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"user_id":9`, `"username":"gymowner"`, `"role":"user"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{"no role set", "", http.StatusForbidden},
		{"regular user", "user", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set(ContextRole, tt.role)
				}
				c.Next()
			})
			router.Use(AdminRequired())
			router.POST("/llm-configs", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/llm-configs", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("role %q: status = %d, expected %d", tt.role, w.Code, tt.expected)
			}
		})
	}
}

func TestContextAccessors_ZeroValuesWhenUnset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("GetUserID on empty context = %d, expected 0", id)
	}
	if name := GetUsername(c); name != "" {
		t.Errorf("GetUsername on empty context = %q, expected empty", name)
	}
	if role := GetRole(c); role != "" {
		t.Errorf("GetRole on empty context = %q, expected empty", role)
	}

	c.Set(ContextUserID, uint(33))
	c.Set(ContextUsername, "coach")
	c.Set(ContextRole, "admin")

	if id := GetUserID(c); id != 33 {
		t.Errorf("GetUserID = %d, expected 33", id)
	}
	if name := GetUsername(c); name != "coach" {
		t.Errorf("GetUsername = %q, expected coach", name)
	}
	if role := GetRole(c); role != "admin" {
		t.Errorf("GetRole = %q, expected admin", role)
	}
}
