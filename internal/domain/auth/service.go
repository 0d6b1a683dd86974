package auth

import "context"

// AuthService authenticates the single operator account configured at boot.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)
	Logout(ctx context.Context, req RefreshTokenRequest) error
}
