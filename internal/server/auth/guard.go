package auth

import (
	"strings"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/models"
)

// Principal is the authenticated identity extracted from a verified token.
type Principal struct {
	Subject string
	Role    models.Role
}

// Guard gates protected operations behind bearer-token verification.
type Guard struct {
	tokens *TokenService
}

func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

// Authorize extracts the bearer credential from headers and verifies it.
// The header name is matched case-insensitively; the "Bearer " prefix must
// match exactly. Every rejection is common.ErrorUnauthorized regardless of
// cause, so a caller cannot tell a missing token from a malformed, forged
// or expired one.
func (g *Guard) Authorize(headers map[string]string) (*Principal, error) {
	raw := g.bearerToken(headers)
	if raw == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if claims.Subject == "" {
		return nil, common.ErrorUnauthorized
	}

	return &Principal{Subject: claims.Subject, Role: models.Role(claims.Role)}, nil
}

func (g *Guard) bearerToken(headers map[string]string) string {
	for name, value := range headers {
		if !strings.EqualFold(name, common.AuthorizationHeaderName) {
			continue
		}
		if !strings.HasPrefix(value, common.BearerPrefix) {
			return ""
		}
		return value[len(common.BearerPrefix):]
	}
	return ""
}
