package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = shared.NewError(shared.ErrDuplicate, "User with this email already exists")
	// ErrBadLogin is returned for an unknown email or a wrong password alike.
	ErrBadLogin = shared.NewError(shared.ErrInvalidCredentials, "Invalid email or password")
)

// Notifier is told about newly registered users.
type Notifier interface {
	UserRegistered(ctx context.Context, user User) error
}

// Service wraps registration and login business rules.
type Service struct {
	repo     Repository
	hasher   *Hasher
	tokens   *TokenService
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a new Service. notifier may be nil.
func NewService(repo Repository, hasher *Hasher, tokens *TokenService, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, notifier: notifier, logger: logger}
}

// Register hashes the password, stores the user and issues a token.
// The request is expected to be normalised and validated.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.CreateUser(ctx, NewUser{
		Email:        req.Email,
		FirstName:    req.FirstName,
		FamilyName:   req.FamilyName,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("auth: create user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.UserRegistered(ctx, user); err != nil {
			s.logger.Warn("notify registration",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
		}
	}
	return result, nil
}

// Login validates email/password credentials and issues a token. Unknown
// email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return AuthResult{}, ErrBadLogin
		}
		return AuthResult{}, fmt.Errorf("auth: find user: %w", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: verify password for %s: %w", user.ID, err)
	}
	if !ok {
		return AuthResult{}, ErrBadLogin
	}
	return s.issue(user)
}

func (s *Service) issue(user User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:  UserSummary{ID: user.ID, Email: user.Email},
		Token: token,
	}, nil
}
