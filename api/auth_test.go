package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/auth"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) ParseToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	user := &domain.User{ID: 3, Name: "Sam", Email: "sam@example.com", Role: domain.UserRoleGuest}
	mockService.On("Register", mock.Anything, auth.RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     domain.UserRoleGuest,
	}).Return(user, "token-abc", nil).Once()

	c, w := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"hunter22","role":"guest"}`)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.Token)
	assert.Equal(t, "sam@example.com", resp.User.Email)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	c, w := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"hunter22","role":"admin"}`)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	c, w := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"abc","role":"guest"}`)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	mockService.On("Register", mock.Anything, mock.Anything).
		Return(nil, "", domain.ErrEmailTaken).Once()

	c, w := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Sam","email":"sam@example.com","password":"hunter22","role":"guest"}`)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email is already registered")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	user := &domain.User{ID: 3, Name: "Sam", Email: "sam@example.com", Role: domain.UserRoleGuest}
	mockService.On("Login", mock.Anything, "sam@example.com", "hunter22").
		Return(user, "token-abc", nil).Once()

	c, w := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"sam@example.com","password":"hunter22"}`)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.Token)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	mockService.On("Login", mock.Anything, "sam@example.com", "wrong").
		Return(nil, "", domain.ErrInvalidCredentials).Once()

	c, w := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"sam@example.com","password":"wrong"}`)

	handler.login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestAuthHandler_Me(t *testing.T) {
	mockService := &MockAuthService{}
	handler := NewAuthHandler(mockService)

	user := &domain.User{ID: 3, Name: "Sam", Email: "sam@example.com", Role: domain.UserRoleGuest}
	mockService.On("GetUser", mock.Anything, int64(3)).Return(user, nil).Once()

	c, w := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(ctxUserID, int64(3))

	handler.me(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp userResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sam", resp.Name)
}
