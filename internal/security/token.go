package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"commonage-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// PortalClaims are the claims the portal gateway puts on bearer tokens after
// the identity provider authenticates the user. The engine trusts them.
type PortalClaims struct {
	UserID int32  `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Staff  bool   `json:"staff"`
	jwt.RegisteredClaims
}

// Actor converts the verified claims into the domain actor identity.
func (c *PortalClaims) Actor() domain.Actor {
	return domain.Actor{
		UserID:  c.UserID,
		Subject: c.Subject,
		Staff:   c.Staff,
	}
}

type TokenManager interface {
	ValidateToken(tokenString string) (*PortalClaims, error)

	// IssueToken exists for tests and local development; production tokens
	// come from the gateway, signed with the same shared secret.
	IssueToken(userID int32, subject, email string, staff bool, ttl time.Duration) (string, error)
}

type tokenManager struct {
	secret []byte
	issuer string
}

func NewTokenManager(secret, issuer string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (m *tokenManager) ValidateToken(tokenString string) (*PortalClaims, error) {
	claims := &PortalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *tokenManager) IssueToken(userID int32, subject, email string, staff bool, ttl time.Duration) (string, error) {
	if subject == "" {
		subject = strconv.Itoa(int(userID))
	}
	claims := PortalClaims{
		UserID: userID,
		Email:  email,
		Staff:  staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
