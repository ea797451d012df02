package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// AuthService implements registration, verification and login.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, notifier ports.Notifier, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, notifier: notifier, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	code, err := verificationCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:            email,
		PasswordHash:     hash,
		Role:             domain.RoleUser,
		VerificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user, ports.PurposeSession)
	if err != nil {
		return nil, err
	}

	s.notifier.Enqueue(ports.Notification{
		To:      user.Email,
		Subject: "Verify your account",
		Body:    "Your verification code is " + code,
	})
	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return &ports.AuthResult{Token: token, User: user}, nil
}

// Validate checks the verification code. A wrong code consumes one attempt;
// once MaxVerificationAttempts are spent every further try is rejected.
func (s *AuthService) Validate(ctx context.Context, userID, code string) error {
	user, err := s.users.FindByID(ctx, userID, domain.ScopeActive)
	if err != nil {
		return userErr(err)
	}
	if user.Verified {
		return domain.ErrAlreadyVerified
	}
	if user.Attempts >= domain.MaxVerificationAttempts {
		return domain.ErrTooManyAttempts
	}

	if code != user.VerificationCode {
		attempts := user.Attempts + 1
		if _, err := s.users.Update(ctx, userID, domain.UserUpdate{Attempts: &attempts}); err != nil {
			return userErr(err)
		}
		s.log.Warn().Str("user_id", userID).Int("attempts", attempts).Msg("wrong verification code")
		if attempts >= domain.MaxVerificationAttempts {
			return domain.ErrTooManyAttempts
		}
		return domain.ErrInvalidCode
	}

	verified := true
	if _, err := s.users.Update(ctx, userID, domain.UserUpdate{Verified: &verified}); err != nil {
		return userErr(err)
	}
	s.log.Info().Str("user_id", userID).Msg("user verified")
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email, domain.ScopeActive)
	if err != nil {
		return nil, userErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, ports.PurposeSession)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verificationCode returns a random 6-digit code.
func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// userErr maps a store miss to ErrUserNotFound.
func userErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
