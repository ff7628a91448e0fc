package jwt

import (
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func testSession() auth.Session {
	now := time.Now()
	return auth.Session{
		ID:         "sess-1",
		UserID:     "u-1",
		EmployeeID: "EMP002",
		Email:      "jane@dayflow.com",
		Role:       user.RoleEmployee,
		IssuedAt:   now,
		ExpiresAt:  now.Add(time.Hour),
	}
}

func TestJWTService_AccessTokenCarriesSessionClaims(t *testing.T) {
	svc := NewJWTService(testSecret)
	s := testSession()

	token, expiresAt, err := svc.GenerateAccessToken(s)
	require.NoError(t, err)
	assert.Equal(t, s.ExpiresAt.Unix(), expiresAt)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims := ClaimsFromMap(decoded.PrivateClaims())
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "EMP002", claims.EmployeeID)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("other-secret").GenerateAccessToken(testSession())
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(NewJWTService(testSecret).JWTAuth(), token)
	assert.Error(t, err)
}

func TestJWTService_SSEToken(t *testing.T) {
	svc := NewJWTService(testSecret)

	token, expiresIn, err := svc.GenerateSSEToken(testSession())
	require.NoError(t, err)
	assert.InDelta(t, 300, expiresIn, 2)

	claims, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)

	access, _, err := svc.GenerateAccessToken(testSession())
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_ExpiredAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret)
	s := testSession()
	s.IssuedAt = time.Now().Add(-2 * time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Hour)

	token, _, err := svc.GenerateAccessToken(s)
	require.NoError(t, err)
	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}
