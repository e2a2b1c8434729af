package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/stayfinder/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthService_Register_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "sam@example.com").Return(nil, domain.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*domain.User)
			user.ID = 3
		}).
		Return(nil).Once()

	user, token, err := service.Register(ctx, RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     domain.UserRoleGuest,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3), user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	claims, err := service.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, domain.UserRoleGuest, claims.Role)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "sam@example.com").
		Return(&domain.User{ID: 3, Email: "sam@example.com"}, nil).Once()

	user, token, err := service.Register(ctx, RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     domain.UserRoleGuest,
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Nil(t, user)
	assert.Empty(t, token)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	ctx := context.Background()
	stored := &domain.User{ID: 3, Email: "sam@example.com", PasswordHash: string(hash), Role: domain.UserRoleHost}
	mockRepo.On("GetByEmail", ctx, "sam@example.com").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, "sam@example.com", "hunter22")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	claims, err := service.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, domain.UserRoleHost, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	ctx := context.Background()
	stored := &domain.User{ID: 3, Email: "sam@example.com", PasswordHash: string(hash)}
	mockRepo.On("GetByEmail", ctx, "sam@example.com").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, "sam@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", time.Hour)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound).Once()

	_, _, err := service.Login(ctx, "nobody@example.com", "hunter22")

	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ParseToken_WrongSecret(t *testing.T) {
	mockRepo := &MockUserRepository{}
	issuer := NewAuthService(mockRepo, "secret-one", time.Hour)
	verifier := NewAuthService(mockRepo, "secret-two", time.Hour)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "sam@example.com").Return(nil, domain.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	_, token, err := issuer.Register(ctx, RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     domain.UserRoleGuest,
	})
	assert.NoError(t, err)

	claims, err := verifier.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewAuthService(mockRepo, "test-secret", -time.Hour)

	ctx := context.Background()
	mockRepo.On("GetByEmail", ctx, "sam@example.com").Return(nil, domain.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	_, token, err := service.Register(ctx, RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "hunter22",
		Role:     domain.UserRoleGuest,
	})
	assert.NoError(t, err)

	claims, err := service.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
