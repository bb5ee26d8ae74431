package jwtutil

import (
	"time"

	"carcrm/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	secret = []byte(config.InsecureDevSecret)
	expiry = 8 * time.Hour
)

// SessionClaims represents the JWT claims carried by the session cookie
type SessionClaims struct {
	AdminID uint   `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Initialize configures the signing secret and token lifetime
func Initialize(cfg *config.SessionConfig) {
	secret = []byte(cfg.Secret)
	expiry = time.Duration(cfg.ExpirationHours) * time.Hour
}

// GenerateToken creates a signed session token for an admin
func GenerateToken(adminID uint, email string) (string, error) {
	claims := SessionClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the session token. Any failure
// (bad signature, expired, malformed) is reported as an error, never
// a partial payload.
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// Expiry returns the configured token lifetime; the session cookie
// Max-Age is kept in step with it.
func Expiry() time.Duration {
	return expiry
}
