package usecase

import (
	"context"
	"errors"
	"fmt"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

const tokenTypeBearer = "Bearer"

func (s *userService) IssueToken(ctx context.Context, req *request.AuthRequest) (*response.TokenResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	email := normalizeEmail(req.Username)

	// 2. Cari user
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for token", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	// 3. Cek password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	// 4. Sign token
	token, err := utils.NewAccessToken(s.jwt.Secret, s.jwt.TTL(), user.Email, user.ID, string(user.Role), s.now())
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Token issued",
		zap.Int64("user_id", user.ID),
		zap.Time("expires_at", token.ExpiresAt),
	)

	return &response.TokenResponse{
		Token:     token.Token,
		TokenType: tokenTypeBearer,
		ExpiresAt: token.ExpiresAt,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
	}, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (utils.Principal, error) {
	claims, err := utils.ParseAccessToken(s.jwt.Secret, token, s.now)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return utils.Principal{}, fmt.Errorf("%w: token expired", ErrUnauthenticated)
		}
		return utils.Principal{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	// token subject must still be a known user with the same id
	user, err := s.repo.User.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return utils.Principal{}, fmt.Errorf("find token user: %w", err)
	}
	if user == nil || user.ID != claims.UserID {
		s.log.Warn("Token user mismatch",
			zap.String("subject", claims.Subject),
			zap.Int64("user_id", claims.UserID),
		)
		return utils.Principal{}, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
	}

	// role is read from the store, not the token
	return utils.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, nil
}

func (s *userService) Profile(_ context.Context, principal utils.Principal) (*response.ProfileResponse, error) {
	if principal.UserID <= 0 {
		return nil, fmt.Errorf("%w: no user in context", ErrUnauthenticated)
	}

	return &response.ProfileResponse{
		Username:    principal.Email,
		UserID:      principal.UserID,
		Authorities: []string{principal.Role},
	}, nil
}
