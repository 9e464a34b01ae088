package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetPrincipalFromContext returns the caller set by the auth middleware
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return Principal{}, false
	}
	email, _ := ctx.Value(EmailKey).(string)
	role, _ := GetRoleFromContext(ctx)

	return Principal{UserID: userID, Email: email, Role: role}, true
}

func SetUserContext(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, p.UserID)
	ctx = context.WithValue(ctx, EmailKey, p.Email)
	ctx = context.WithValue(ctx, RoleKey, p.Role)
	return ctx
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
