package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/dispatch/internal/pkg/models"
)

var (
	ErrMissingToken = errors.New("authorization header is required")
	ErrBadFormat    = errors.New("invalid authorization format")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents standard JWT claims plus the acting party
type Claims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns the caller identity carried by the claims
func (c *Claims) Actor() models.Actor {
	return models.Actor{UserID: c.UserID, Role: c.Role}
}

// GenerateToken issues an HS256 token for userID acting as role
func GenerateToken(userID string, role models.Role, cfg models.JWTConfig) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute)

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.Issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// ValidateToken parses tokenString, checks the signature and returns the claims
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing user_id or role", ErrInvalidToken)
	}

	return claims, nil
}

// FromHeader extracts and validates a "Bearer <token>" Authorization value
func FromHeader(header string, secret string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrBadFormat
	}
	return ValidateToken(parts[1], secret)
}
