package utils

import (
	"errors"
	"time"

	"courtbook/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "courtbook-dev-secret"

// SessionClaims is what a session token carries: the session record key and its owner.
type SessionClaims struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret == "" {
		return []byte(devSecret)
	}
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for a session. The token expires after duration.
func GenerateToken(sessionID, userID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseSessionToken validates tokenString and extracts its session claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(string)
	if sid == "" || sub == "" {
		return nil, errors.New("token does not carry a session")
	}

	out := &SessionClaims{SessionID: sid, UserID: sub}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
