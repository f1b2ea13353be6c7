package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
)

// Accounts issues bearer tokens for logins and registrations.
type Accounts struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAccounts creates the account service. A nil logger uses slog.Default().
func NewAccounts(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *Accounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accounts{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// RegisterInput holds the arguments of Register.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login checks the credentials and returns the member with a fresh token.
// Unknown emails and wrong passwords both fail with ErrAuthentication.
func (a *Accounts) Login(ctx context.Context, email, password string) (*models.Member, string, error) {
	a.logger.Info("Login request", "email", email)

	if email == "" || password == "" {
		metrics.RecordAuthEvent(metrics.AuthLoginFailure)
		return nil, "", ErrAuthentication
	}

	member, err := a.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			a.logger.Error("Login lookup failed", "email", email, "error", err)
			return nil, "", fmt.Errorf("failed to authenticate: %w", err)
		}
		metrics.RecordAuthEvent(metrics.AuthLoginFailure)
		a.logger.Warn("Login failed", "email", email)
		return nil, "", ErrAuthentication
	}

	token, err := a.jwtManager.Generate(member)
	if err != nil {
		a.logger.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, "", err
	}

	metrics.RecordAuthEvent(metrics.AuthLoginSuccess)
	a.logger.Info("Member logged in successfully", "member_id", member.ID)
	return member, token, nil
}

// Register creates a member and returns it with a token for the new account.
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*models.Member, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	a.logger.Info("Register request", "email", in.Email)

	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	member, err := a.authenticator.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists), errors.Is(err, auth.ErrWeakPassword):
			a.logger.Warn("Registration rejected", "email", in.Email, "error", err)
			return nil, "", &Error{Kind: ErrValidation, Message: err.Error()}
		default:
			a.logger.Error("Registration failed", "email", in.Email, "error", err)
			return nil, "", err
		}
	}

	token, err := a.jwtManager.Generate(member)
	if err != nil {
		a.logger.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, "", err
	}

	metrics.RecordAuthEvent(metrics.AuthRegister)
	a.logger.Info("Member registered successfully", "member_id", member.ID, "email", member.Email)
	return member, token, nil
}
