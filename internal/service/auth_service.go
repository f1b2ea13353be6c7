package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/rpc/authv1"
)

// AuthService implements the AuthService RPC interface on top of Accounts.
type AuthService struct {
	accounts *Accounts
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts *Accounts, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		accounts: accounts,
		logger:   logger,
	}
}

var _ authv1.AuthServiceHandler = (*AuthService)(nil)

// Register creates a new member account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[authv1.RegisterRequest]) (*connect.Response[authv1.RegisterResponse], error) {
	member, token, err := s.accounts.Register(ctx, RegisterInput{
		Name:     req.Msg.Name,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&authv1.RegisterResponse{
		User:  toUser(member),
		Token: token,
	}), nil
}

// Login authenticates a member and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[authv1.LoginRequest]) (*connect.Response[authv1.LoginResponse], error) {
	member, token, err := s.accounts.Login(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&authv1.LoginResponse{
		User:  toUser(member),
		Token: token,
	}), nil
}

// Logout is a no-op since tokens are stateless; clients discard the token.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[authv1.LogoutRequest]) (*connect.Response[authv1.LogoutResponse], error) {
	s.logger.Info("Logout request", "member_id", middleware.GetMemberID(ctx))
	return connect.NewResponse(&authv1.LogoutResponse{}), nil
}

// GetCurrentUser returns the calling member's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[authv1.GetCurrentUserRequest]) (*connect.Response[authv1.GetCurrentUserResponse], error) {
	member := middleware.GetMember(ctx)
	if member == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	return connect.NewResponse(&authv1.GetCurrentUserResponse{
		User: toUser(member),
	}), nil
}

func toUser(m *models.Member) *authv1.User {
	return &authv1.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// toConnectError maps service error categories onto connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrAuthentication), errors.Is(err, ErrAuthorization):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
