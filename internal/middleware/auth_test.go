package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"chat_backend/internal/domain"
	"chat_backend/internal/service"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

type stubAuthService struct {
	validToken string
	user       *domain.User
}

func (s *stubAuthService) Register(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (*service.LoginResponse, error) {
	panic("not used")
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) (*domain.User, error) {
	if token == s.validToken {
		return s.user, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(&stubAuthService{
		validToken: "good-token",
		user:       &domain.User{ID: 42, Username: "alice"},
	}, logger.New("error"))

	router := gin.New()
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetInt("user_id"),
			"username": c.GetString("username"),
		})
	})
	return router
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	router := newAuthRouter()

	do := func(mutate func(r *http.Request)) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if mutate != nil {
			mutate(req)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("should pass a valid bearer token and expose the identity", func(t *testing.T) {
		req := require.New(t)

		rec := do(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer good-token")
		})

		req.Equal(http.StatusOK, rec.Code)
		req.Contains(rec.Body.String(), `"user_id":42`)
		req.Contains(rec.Body.String(), `"username":"alice"`)
	})

	t.Run("should accept the token from the query string", func(t *testing.T) {
		req := require.New(t)

		rec := do(func(r *http.Request) {
			r.URL.RawQuery = "token=good-token"
		})

		req.Equal(http.StatusOK, rec.Code)
	})

	t.Run("should reject a missing header", func(t *testing.T) {
		rec := do(nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject a malformed header", func(t *testing.T) {
		rec := do(func(r *http.Request) {
			r.Header.Set("Authorization", "good-token")
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject an unknown token", func(t *testing.T) {
		rec := do(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer bad-token")
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
