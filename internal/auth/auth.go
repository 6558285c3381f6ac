// Package auth wraps the account endpoints and keeps the local session in sync.
// API errors are returned unchanged; nothing is persisted when a call fails.
package auth

import (
	"context"
	"fmt"

	"taskdash/internal/service"
	"taskdash/internal/session"
)

// Login authenticates and stores the token and user.
func Login(ctx context.Context, svc service.Service, store *session.Store, email, password string) (service.AuthResult, error) {
	res, err := svc.Login(ctx, email, password)
	if err != nil {
		return service.AuthResult{}, err
	}
	if err := persist(store, res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// Register creates an account and stores the token and user.
func Register(ctx context.Context, svc service.Service, store *session.Store, name, email, password string) (service.AuthResult, error) {
	res, err := svc.Register(ctx, name, email, password)
	if err != nil {
		return service.AuthResult{}, err
	}
	if err := persist(store, res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// Update changes the profile and stores the returned user.
// The password is sent as its own confirmation.
func Update(ctx context.Context, svc service.Service, store *session.Store, name, email, password string) (service.User, error) {
	user, err := svc.UpdateProfile(ctx, service.ProfileInput{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	if err != nil {
		return service.User{}, err
	}
	if err := store.SaveUser(user); err != nil {
		return service.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Logout revokes the token and clears the local session.
// A 401 still clears, since the token is already unusable.
func Logout(ctx context.Context, svc service.Service, store *session.Store) error {
	if err := svc.Logout(ctx); err != nil && !service.IsUnauthorized(err) {
		return err
	}
	return store.Clear()
}

// CurrentUser returns the stored user, or nil when logged out.
func CurrentUser(store *session.Store) (*service.User, error) {
	return store.CurrentUser()
}

// Token returns the stored bearer token, or "" when logged out.
func Token(store *session.Store) (string, error) {
	tok, err := store.Token()
	if err != nil || tok == nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func persist(store *session.Store, res service.AuthResult) error {
	if res.Token == "" {
		return fmt.Errorf("auth response has no token")
	}
	if err := store.SaveToken(res.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := store.SaveUser(res.User); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
