package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplepulse/perform-backend-go/internal/domain/user"
)

func TestGenerateAccessToken(t *testing.T) {
	t.Parallel()
	svc := NewJWTService("test-secret", "15m")

	employeeID := "emp-1"
	companyID := "co-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", &employeeID, &companyID, user.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "co-1", claims["company_id"])
	assert.Equal(t, string(user.RoleManager), claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessTokenNilOptionals(t *testing.T) {
	t.Parallel()
	svc := NewJWTService("test-secret", "15m")

	tokenString, _, err := svc.GenerateAccessToken("user-2", "mika@example.com", nil, nil, user.RoleEmployee)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
	assert.Nil(t, claims["company_id"])
}

func TestGenerateAccessTokenBadExpiration(t *testing.T) {
	t.Parallel()
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", nil, nil, user.RoleEmployee)
	assert.Error(t, err)
}
