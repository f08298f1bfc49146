package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/models"
)

// TokenTTL is the standard lifetime of an issued session token.
const TokenTTL = 3600 * time.Second

// Claims is the signed assertion set of a session token: subject (email),
// role, issued-at and expiry. Wire form is the standard compact HS256 JWT,
// three unpadded base64url segments.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService issues and verifies stateless session tokens. No server-side
// record backs a token; validity is fully recomputable from the token bytes
// plus the signing secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with secret. A
// non-positive ttl falls back to TokenTTL.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Issue mints a token for subject with the given role, expiring the
// configured ttl after issuance.
func (s *TokenService) Issue(subject string, role models.Role) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses tokenString and returns its claims. The signature is checked
// before any claim is trusted, the algorithm is pinned to HS256 (a token
// cannot choose its own scheme), and exp/nbf are enforced against the
// current time. Expired tokens yield common.ErrTokenExpired; every other
// failure yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
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
