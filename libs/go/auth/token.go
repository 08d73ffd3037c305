// Package auth verifies the HS256 bearer tokens issued by the storefront's
// account service. Token issuance lives there; GenerateToken exists for
// tooling and tests that need a signed token.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("insufficient role")
)

// Claims carried by storefront and fitness tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey []byte
	leeway    time.Duration
}

func NewJWTService(secret string, leeway time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		leeway:    leeway,
	}
}

func (j *JWTService) GenerateToken(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify parses the token and checks signature, algorithm and expiry.
func (j *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(j.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: user_id claim is empty", ErrInvalidToken)
	}
	return claims, nil
}

// VerifyRole verifies the token and requires the given role.
func (j *JWTService) VerifyRole(tokenString, role string) (*Claims, error) {
	claims, err := j.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrForbidden
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
// The second return is false when no header was sent at all.
func BearerToken(header string) (string, bool, error) {
	if header == "" {
		return "", false, nil
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", true, ErrMissingToken
	}
	return strings.TrimSpace(token), true, nil
}
