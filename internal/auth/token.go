package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a session token. ID (jti) identifies the session for logout.
type Claims struct {
	AccountID int64         `json:"account_id"`
	Role      internal.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Session() *internal.Session {
	return &internal.Session{AccountID: c.AccountID, Role: c.Role, TokenID: c.ID}
}

// TokenGenerator issues and verifies session tokens.
type TokenGenerator interface {
	Generate(accountID int64, role internal.Role) (string, *Claims, error)
	Validate(token string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// Generate signs a fresh token; every call gets a new jti.
func (j *JWTTokenGenerator) Generate(accountID int64, role internal.Role) (string, *Claims, error) {
	now := j.now()
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%s:%d", role, accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" || !claims.Role.Valid() || claims.AccountID == 0 {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
