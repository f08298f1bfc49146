package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/logging"
	"github.com/schoolcloud/identity/internal/server/auth"
	"github.com/schoolcloud/identity/internal/server/models"
	"github.com/schoolcloud/identity/internal/server/repositories/users"
)

// DefaultEncryptionPolicy is applied when a policy mutation names none.
const DefaultEncryptionPolicy = "SSE-S3"

// SignupParams carries the signup input. Role may be empty; it defaults to
// student.
type SignupParams struct {
	Email    string
	Password string
	Role     string
	SchoolID string
	DOB      string
}

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	Token string
	User  *models.User
}

// IdentityService orchestrates signup, login, and role/policy mutation over
// the user record store, the credential hasher, the token service, and the
// audit ledger.
type IdentityService struct {
	users  users.Repository
	ledger *Ledger
	tokens *auth.TokenService
	logger logging.Logger
	now    func() time.Time
}

func NewIdentityService(repo users.Repository, ledger *Ledger, tokens *auth.TokenService, logger logging.Logger) *IdentityService {
	return &IdentityService{
		users:  repo,
		ledger: ledger,
		tokens: tokens,
		logger: logger.With("module", "identity"),
		now:    time.Now,
	}
}

// normalizeEmail lowercases and trims the identity key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user record, appends the account-creation and
// group-assignment audit events, and issues a session token. An email that
// already has a record is rejected with common.ErrorAlreadyExists; nothing
// is written or appended for invalid input.
func (s *IdentityService) Signup(ctx context.Context, p SignupParams) (*AuthResult, error) {
	email := normalizeEmail(p.Email)
	if email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", common.ErrorValidation)
	}

	role := models.RoleStudent
	if p.Role != "" {
		parsed, err := models.ParseRole(p.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: role must be student|teacher|admin", common.ErrorValidation)
		}
		role = parsed
	}

	salt, hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		Role:         role,
		SchoolID:     p.SchoolID,
		DOB:          p.DOB,
		Salt:         salt,
		PasswordHash: hash,
		CreatedAt:    s.now().Unix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit(ctx, func() error {
		return s.ledger.AppendWithData(ctx, email, "auth.signup", StatusOK, "Account created",
			map[string]any{"role": role.String()})
	})
	s.audit(ctx, func() error {
		return s.ledger.Append(ctx, email, "identity.group.add", "Added to group: "+role.String())
	})

	token, err := s.tokens.Issue(email, role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "signup ok", "email", email, "role", role.String())
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password are indistinguishable to the caller: both yield
// common.ErrorUnauthorized.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", common.ErrorValidation)
	}

	user, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(email, user.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.audit(ctx, func() error {
		return s.ledger.Append(ctx, email, "auth.login", "Login success")
	})

	s.logger.Info(ctx, "login ok", "email", email)
	return &AuthResult{Token: token, User: user}, nil
}

// SetRole moves the user into one of the fixed groups. Anything outside the
// enum is rejected before the store is touched.
func (s *IdentityService) SetRole(ctx context.Context, email, role string) (models.Role, error) {
	email = normalizeEmail(email)

	parsed, err := models.ParseRole(strings.ToLower(role))
	if err != nil {
		return "", fmt.Errorf("%w: role must be student|teacher|admin", common.ErrorValidation)
	}

	if err := s.users.UpdateRole(ctx, email, parsed); err != nil {
		return "", fmt.Errorf("update role: %w", err)
	}

	s.audit(ctx, func() error {
		return s.ledger.Append(ctx, email, "identity.group.add", "Added to group: "+parsed.String())
	})

	return parsed, nil
}

// SetEncryptionPolicy updates the user's encryption-policy tag, defaulting
// to DefaultEncryptionPolicy when none is given.
func (s *IdentityService) SetEncryptionPolicy(ctx context.Context, email, policy string) (string, error) {
	email = normalizeEmail(email)
	if policy == "" {
		policy = DefaultEncryptionPolicy
	}

	if err := s.users.UpdateEncryption(ctx, email, policy); err != nil {
		return "", fmt.Errorf("update encryption policy: %w", err)
	}

	s.audit(ctx, func() error {
		return s.ledger.AppendWithData(ctx, email, "policy.attach", StatusOK, "Encryption policy set: "+policy,
			map[string]any{"encryption": policy})
	})

	return policy, nil
}

// audit runs an append and logs a failure instead of failing the primary
// operation. The ledger already surfaced the error; this is the explicit
// non-fatal choice for operations that have otherwise succeeded.
func (s *IdentityService) audit(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		s.logger.Error(ctx, "audit append failed", "error", err.Error())
	}
}
