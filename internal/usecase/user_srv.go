package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	// IssueToken exchanges email and password for a bearer token
	IssueToken(ctx context.Context, req *request.AuthRequest) (*response.TokenResponse, error)
	// Authenticate resolves a bearer token into the calling user
	Authenticate(ctx context.Context, token string) (utils.Principal, error)
	Profile(ctx context.Context, principal utils.Principal) (*response.ProfileResponse, error)
	// EnsureAdmin creates or promotes the bootstrap administrator
	EnsureAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	repo *repository.Repository
	jwt  utils.JWTConfig
	now  func() time.Time
	log  *zap.Logger
}

func NewUserService(
	repo *repository.Repository,
	jwtConfig utils.JWTConfig,
	now func() time.Time,
	log *zap.Logger,
) UserService {
	return &userService{
		repo: repo,
		jwt:  jwtConfig,
		now:  now,
		log:  log.With(zap.String("service", "user")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	email := normalizeEmail(req.Email)

	// 2. Cek email sudah terdaftar
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, ErrConflict)
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Simpan user, role selalu ROLE_USER
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Gender:       req.Gender,
		Address:      req.Address,
		MobileNo:     req.MobileNo,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email %s already registered: %w", email, ErrConflict)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}

	if user != nil {
		if user.Role == entity.RoleAdmin {
			return nil
		}
		if err := s.repo.User.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.log.Info("User promoted to admin", zap.Int64("user_id", user.ID), zap.String("email", email))
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := s.now()
	admin := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// another instance created it first
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin user created", zap.Int64("user_id", admin.ID), zap.String("email", email))
	return nil
}
