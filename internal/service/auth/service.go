// Package auth implements login for the staff demo accounts. The account
// table is injected from configuration rather than baked into the code, so
// deployments can swap or extend the credential set without a rebuild.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mpmulbi/aspirasi-backend/internal/auth"
	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// Account is one login the service accepts. PasswordHash is a bcrypt hash;
// when it is empty the account is a passwordless demo login and any password
// is accepted.
type Account struct {
	Username     string
	Name         string
	Role         domain.UserRole
	PasswordHash string
}

type Service struct {
	accounts map[string]Account
	jwt      *auth.JWTManager
	log      *slog.Logger
}

func NewService(log *slog.Logger, jwtManager *auth.JWTManager, accounts []Account) *Service {
	byUsername := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byUsername[strings.ToLower(a.Username)] = a
	}
	return &Service{
		accounts: byUsername,
		jwt:      jwtManager,
		log:      log.With("service", "auth"),
	}
}

type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Login checks the credentials against the injected account table and issues
// an access token. Unknown usernames and bad passwords both come back as
// domain.ErrUnauthorized so callers cannot probe which accounts exist.
func (s *Service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	if err := input.Validate(); err != nil {
		return LoginResult{}, err
	}

	account, ok := s.accounts[strings.ToLower(strings.TrimSpace(input.Username))]
	if !ok {
		s.log.WarnContext(ctx, "login rejected", "username", input.Username, "reason", "unknown user")
		return LoginResult{}, fmt.Errorf("unknown username: %w", domain.ErrUnauthorized)
	}

	if account.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
			s.log.WarnContext(ctx, "login rejected", "username", account.Username, "reason", "bad password")
			return LoginResult{}, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
	}

	token, err := s.jwt.GenerateAccessToken(account.Username, string(account.Role))
	if err != nil {
		return LoginResult{}, fmt.Errorf("issuing access token: %w", err)
	}

	s.log.InfoContext(ctx, "login succeeded", "username", account.Username, "role", account.Role)

	return LoginResult{
		User: domain.User{
			ID:       account.Username,
			Username: account.Username,
			Name:     account.Name,
			Role:     account.Role,
		},
		Token: token,
	}, nil
}

// ValidateToken resolves an access token back to the account it was issued
// for. Tokens that verify but reference a username no longer in the table are
// rejected, so removing an account from configuration revokes its sessions.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.User, error) {
	username, _, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}

	account, ok := s.accounts[strings.ToLower(username)]
	if !ok {
		s.log.WarnContext(ctx, "token for unknown account", "username", username)
		return domain.User{}, fmt.Errorf("unknown account: %w", domain.ErrUnauthorized)
	}

	return domain.User{
		ID:       account.Username,
		Username: account.Username,
		Name:     account.Name,
		Role:     account.Role,
	}, nil
}
