package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-teamplanner/internal/auth"
	autherrors "go-teamplanner/internal/auth/errors"
)

type fakeAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error)
	getMeFn    func(ctx context.Context, userID string) (*auth.AuthResponse, error)
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error) {
	if f.refreshFn != nil {
		return f.refreshFn(ctx, refreshToken)
	}
	return "", "", auth.AuthResponse{}, autherrors.ErrInvalidRefreshToken
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	if f.getMeFn != nil {
		return f.getMeFn(ctx, userID)
	}
	return nil, autherrors.ErrUserNotFound
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	t.Run("Success Login - Web Client (Cookie Check)", func(t *testing.T) {
		service := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "test@example.com", email)
				assert.Equal(t, "password123", password)
				return "access-token", "refresh-token", auth.AuthResponse{
					ID:        "user-1",
					Email:     "test@example.com",
					CompanyID: "comp-1",
				}, nil
			},
		}
		handler := auth.NewHandler(service)
		router := setupAuthRouter()
		router.POST("/login", handler.Login)

		body, _ := json.Marshal(auth.LoginRequest{
			Email:    "test@example.com",
			Password: "password123",
		})

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 2)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)
		assert.Equal(t, "refresh_token", cookies[1].Name)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "test@example.com", data["user"].(map[string]interface{})["email"])
		assert.Equal(t, "access-token", data["access_token"])
	})

	t.Run("Non-Web Client Gets No Cookies", func(t *testing.T) {
		service := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				return "access-token", "refresh-token", auth.AuthResponse{Email: email}, nil
			},
		}
		handler := auth.NewHandler(service)
		router := setupAuthRouter()
		router.POST("/login", handler.Login)

		body, _ := json.Marshal(auth.LoginRequest{Email: "cli@example.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "api")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Failed Login - Invalid Credentials", func(t *testing.T) {
		handler := auth.NewHandler(&fakeAuthService{})
		router := setupAuthRouter()
		router.POST("/login", handler.Login)

		body, _ := json.Marshal(auth.LoginRequest{Email: "wrong@test.com", Password: "123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		handler := auth.NewHandler(&fakeAuthService{})
		router := setupAuthRouter()
		router.POST("/login", handler.Login)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Register(t *testing.T) {
	employeeID := uuid.New()
	companyID := uuid.New()

	t.Run("Success Register", func(t *testing.T) {
		service := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				return auth.AuthResponse{Email: req.Email, Name: req.Name}, nil
			},
		}
		handler := auth.NewHandler(service)
		router := setupAuthRouter()
		router.POST("/register", handler.Register)

		body, _ := json.Marshal(auth.RegisterRequest{
			Email:      "new@example.com",
			Name:       "New User",
			Password:   "newpassword",
			EmployeeID: employeeID.String(),
			CompanyID:  companyID.String(),
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		handler := auth.NewHandler(&fakeAuthService{})
		router := setupAuthRouter()
		router.POST("/register", handler.Register)

		body, _ := json.Marshal(auth.RegisterRequest{
			Email:      "dup@example.com",
			Name:       "Dup",
			Password:   "newpassword",
			EmployeeID: employeeID.String(),
			CompanyID:  companyID.String(),
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	service := &fakeAuthService{
		getMeFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
			return &auth.AuthResponse{ID: userID, Email: "me@example.com"}, nil
		},
	}
	handler := auth.NewHandler(service)

	router := setupAuthRouter()
	router.GET("/me", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Me(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "me@example.com", res["data"].(map[string]interface{})["email"])
}

func TestHandler_RefreshToken_MissingCookie(t *testing.T) {
	handler := auth.NewHandler(&fakeAuthService{})
	router := setupAuthRouter()
	router.POST("/refresh", handler.RefreshToken)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("X-Client-Type", "web")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
