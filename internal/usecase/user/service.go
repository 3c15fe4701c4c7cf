package user

import (
	"context"
	"errors"

	"delivery-tracker/internal/config"
	domainUser "delivery-tracker/internal/domain/user"
	"delivery-tracker/internal/logger"
	appErrors "delivery-tracker/pkg/errors"
	"delivery-tracker/pkg/utils"

	"go.uber.org/zap"
)

// Service implements principal registration and authentication.
type Service struct {
	userRepo domainUser.Repository
	cfg      *config.Config
}

func NewService(userRepo domainUser.Repository, cfg *config.Config) *Service {
	return &Service{userRepo: userRepo, cfg: cfg}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domainUser.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
	)

	return s.issueToken(u)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in", zap.String("user_id", u.ID.String()))

	return s.issueToken(u)
}

func (s *Service) issueToken(u *domainUser.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Username, u.IsStaff, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  ToUserResponse(u),
	}, nil
}
