package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ryabovm/passport/internal/common"
)

// Claims is the identity carried inside a token: the user's row id, email
// and username, plus the registered expiry/issued-at fields. It carries no
// role or permission data.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenService issues and verifies HS256-signed identity tokens. The secret
// and TTL are injected once at construction; there is no ambient
// configuration lookup inside.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity, valid for the configured TTL.
func (s *TokenService) Issue(userID int64, email, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
	})

	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures map to common.ErrTokenExpired for expired tokens and
// common.ErrInvalidToken for everything else (bad signature, malformed
// string, wrong algorithm). Callers decide how much of that distinction to
// expose; the HTTP layer returns a generic 401 either way.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
