package auth_test

import (
	"context"
	"errors"
	"testing"

	"taskdash/internal/auth"
	"taskdash/internal/config"
	"taskdash/internal/session"
	"taskdash/internal/testutil"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(&config.Config{Dir: t.TempDir()})
}

func TestLogin_PersistsTokenAndUser(t *testing.T) {
	svc := testutil.NewFakeService()
	store := newStore(t)

	res, err := auth.Login(context.Background(), svc, store, "test@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User != svc.User {
		t.Errorf("unexpected user %+v", res.User)
	}

	tok, err := auth.Token(store)
	if err != nil || tok != svc.Token {
		t.Errorf("expected stored token %q, got %q (%v)", svc.Token, tok, err)
	}
	u, err := auth.CurrentUser(store)
	if err != nil || u == nil || *u != svc.User {
		t.Errorf("expected stored user, got %v (%v)", u, err)
	}
}

func TestLogin_FailurePersistsNothing(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoginErr = testutil.ErrUnauthorized
	store := newStore(t)

	_, err := auth.Login(context.Background(), svc, store, "x", "y")
	if !errors.Is(err, svc.LoginErr) {
		t.Fatalf("expected error to propagate unchanged, got %v", err)
	}
	if store.HasToken() {
		t.Error("token must not be stored on failure")
	}
}

func TestRegister_PersistsTokenAndUser(t *testing.T) {
	svc := testutil.NewFakeService()
	store := newStore(t)

	if _, err := auth.Register(context.Background(), svc, store, "Dee", "dee@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, _ := auth.CurrentUser(store)
	if u == nil || u.Name != "Dee" || u.Email != "dee@example.com" {
		t.Errorf("unexpected stored user %+v", u)
	}
	if !store.HasToken() {
		t.Error("expected token after register")
	}
}

func TestUpdate_PersistsUserAndSendsConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()
	store := newStore(t)

	if _, err := auth.Update(context.Background(), svc, store, "New", "new@example.com", "secret"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if svc.LastProfileInput.PasswordConfirmation != "secret" {
		t.Errorf("expected confirmation to equal password, got %+v", svc.LastProfileInput)
	}
	u, _ := auth.CurrentUser(store)
	if u == nil || u.Name != "New" {
		t.Errorf("unexpected stored user %+v", u)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	svc := testutil.NewFakeService()
	store := newStore(t)
	store.SaveToken("tok")
	store.SaveUser(svc.User)

	if err := auth.Logout(context.Background(), svc, store); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.HasToken() {
		t.Error("token should be cleared")
	}
	if u, _ := store.CurrentUser(); u != nil {
		t.Error("user should be cleared")
	}
}

func TestLogout_UnauthorizedStillClears(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LogoutErr = testutil.ErrUnauthorized
	store := newStore(t)
	store.SaveToken("tok")

	if err := auth.Logout(context.Background(), svc, store); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if store.HasToken() {
		t.Error("token should be cleared after 401")
	}
}

func TestLogout_ServerErrorKeepsSession(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LogoutErr = testutil.ErrServer
	store := newStore(t)
	store.SaveToken("tok")

	if err := auth.Logout(context.Background(), svc, store); err == nil {
		t.Fatal("expected error")
	}
	if !store.HasToken() {
		t.Error("token should be kept when logout fails")
	}
}
