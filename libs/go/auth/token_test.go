package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_VerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 0)

	token, err := svc.GenerateToken("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService("secret", 0)

	expired, err := svc.GenerateToken("user-1", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other", 0).GenerateToken("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUser, err := svc.GenerateToken("", RoleAdmin, time.Hour)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":       expired,
		"wrong key":     otherKey,
		"no expiry":     noExpiry,
		"empty user id": noUser,
		"wrong alg":     wrongAlg,
		"garbage":       "not-a-token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_VerifyRole(t *testing.T) {
	svc := NewJWTService("secret", 0)

	customer, err := svc.GenerateToken("user-1", RoleCustomer, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyRole(customer, RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	claims, err := svc.VerifyRole(customer, RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantSent  bool
		wantErr   bool
	}{
		{header: "", wantSent: false},
		{header: "Bearer abc", wantToken: "abc", wantSent: true},
		{header: "bearer  abc ", wantToken: "abc", wantSent: true},
		{header: "Basic abc", wantSent: true, wantErr: true},
		{header: "Bearer", wantSent: true, wantErr: true},
		{header: "Bearer   ", wantSent: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, sent, err := BearerToken(tt.header)
			assert.Equal(t, tt.wantSent, sent)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
