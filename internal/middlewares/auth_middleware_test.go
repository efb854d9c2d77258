package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Isotter/isotter_backend/internal/models"
	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// fakeAuthService 固定のトークンだけを受理するAuthService
type fakeAuthService struct {
	validToken string
	user       *models.User
}

func (s *fakeAuthService) Register(userName, email, password, confirmPassword string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeAuthService) Login(userName, password string) (*models.User, string, error) {
	return nil, "", errors.New("not implemented")
}

func (s *fakeAuthService) ValidateToken(tokenString string) (*services.Claims, error) {
	if tokenString != s.validToken {
		return nil, services.ErrInvalidToken
	}
	return &services.Claims{UserID: s.user.ID, UserName: s.user.UserName, Email: s.user.Email}, nil
}

func (s *fakeAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	if tokenString != s.validToken {
		return nil, services.ErrInvalidToken
	}
	return s.user, nil
}

func (s *fakeAuthService) ForgotPassword(email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeAuthService) ConfirmResetToken(token string) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *fakeAuthService) ResetPassword(token, password string) error {
	return errors.New("not implemented")
}

func setupAuthTestRouter() (*gin.Engine, *fakeAuthService) {
	gin.SetMode(gin.TestMode)

	authService := &fakeAuthService{
		validToken: "valid-token",
		user:       &models.User{ID: 1, UserName: "alice1", Email: "a@x.com"},
	}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(authService), func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "ユーザーがコンテキストにいません"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"userName": user.UserName})
	})

	return r, authService
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"ヘッダーなし", "", http.StatusUnauthorized},
		{"Bearer形式ではない", "Token abc", http.StatusUnauthorized},
		{"無効なトークン", "Bearer bad-token", http.StatusUnauthorized},
		{"有効なトークン", "Bearer valid-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupAuthTestRouter()

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
