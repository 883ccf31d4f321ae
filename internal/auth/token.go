// Package auth implements the token service that issues and verifies
// the signed bearer tokens used by the API.
package auth

import (
	"strconv"
	"time"

	"openboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is the absolute lifetime of an issued token. There is no
	// refresh or rotation mechanism; clients re-login after expiry.
	TokenTTL = 24 * time.Hour

	issuer   = "openboard-api"
	audience = "openboard-client"
)

// TokenService issues and verifies signed, time-limited bearer tokens
// binding a user identity.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given
// process-wide secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the user ID with an absolute
// expiry TokenTTL ahead.
func (s *TokenService) Issue(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", models.NewInternalError(jwt.ErrInvalidKey)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, expiry, issuer and audience, and returns the
// embedded user ID. Any failure yields an UNAUTHORIZED AppError; the
// signing secret is never included in the error.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	return uint(userID), nil
}
