// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/pkg/auth"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "audiosynthese-test"
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = time.Hour
	return cfg
}

func authRouter(cfg *config.Config, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if optional {
		r.Use(OptionalAuthMiddleware(cfg))
	} else {
		r.Use(AuthMiddleware(cfg))
	}

	r.GET("/whoami", func(c *gin.Context) {
		if userID, ok := GetUserIDFromContext(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})
	return r
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	cfg := testConfig()
	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(42, "x@y.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(cfg, false).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":42}` {
		t.Fatalf("body = %s, want user_id 42", body)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	authRouter(testConfig(), false).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	cfg := testConfig()
	token, err := auth.NewJWTManager(cfg).GenerateRefreshToken(42, "x@y.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(cfg, false).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not pass as access token, status = %d", w.Code)
	}
}

func TestOptionalAuthAllowsGuests(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	authRouter(testConfig(), true).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":null}` {
		t.Fatalf("guest request must carry no identity, body = %s", body)
	}
}

func TestOptionalAuthBindsIdentity(t *testing.T) {
	cfg := testConfig()
	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(7, "marie@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(cfg, true).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Fatalf("body = %s, want user_id 7", body)
	}
}
