package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/service/auth"
)

type stubTokenParser struct {
	claims *auth.Claims
	err    error
}

func (s *stubTokenParser) ParseToken(string) (*auth.Claims, error) {
	return s.claims, s.err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	parser := &stubTokenParser{claims: &auth.Claims{UserID: 3, Role: domain.UserRoleGuest}}
	middleware := AuthMiddleware(parser)

	c, w := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Request.Header.Set("Authorization", "Bearer some-token")

	middleware(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), callerID(c))

	role, _ := c.Get(ctxRole)
	assert.Equal(t, domain.UserRoleGuest, role)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	middleware := AuthMiddleware(&stubTokenParser{})

	c, w := newTestContext(t, http.MethodGet, "/api/auth/me", "")

	middleware(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	middleware := AuthMiddleware(&stubTokenParser{})

	c, w := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	middleware(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	middleware := AuthMiddleware(&stubTokenParser{err: errors.New("token expired")})

	c, w := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Request.Header.Set("Authorization", "Bearer expired-token")

	middleware(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	middleware := RequireRole(domain.UserRoleHost)

	c, w := newTestContext(t, http.MethodPost, "/api/listings", "")
	c.Set(ctxRole, domain.UserRoleHost)
	middleware(c)
	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/listings", "")
	c.Set(ctxRole, domain.UserRoleGuest)
	middleware(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/listings", "")
	middleware(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
