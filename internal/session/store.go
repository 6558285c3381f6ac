// Package session persists the bearer token and the current user in the config directory.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"taskdash/internal/config"
	"taskdash/internal/service"
)

// Store reads and writes token.json and user.json.
type Store struct {
	cfg *config.Config
}

// NewStore creates a Store rooted at cfg.Dir.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// HasToken checks if the token file exists.
func (s *Store) HasToken() bool {
	_, err := os.Stat(s.cfg.TokenPath())
	return err == nil
}

// SaveToken writes the bearer token with mode 0600.
func (s *Store) SaveToken(accessToken string) error {
	tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	return s.writeJSON(s.cfg.TokenPath(), tok)
}

// Token returns the stored token.
// A missing file returns (nil, nil).
func (s *Store) Token() (*oauth2.Token, error) {
	var tok oauth2.Token
	found, err := s.readJSON(s.cfg.TokenPath(), &tok)
	if err != nil || !found {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("invalid %s: empty access_token", config.TokenFile)
	}
	return &tok, nil
}

// SaveUser writes the user blob with mode 0600.
func (s *Store) SaveUser(u service.User) error {
	return s.writeJSON(s.cfg.UserPath(), u)
}

// CurrentUser returns the stored user, or nil if none is stored.
func (s *Store) CurrentUser() (*service.User, error) {
	var u service.User
	found, err := s.readJSON(s.cfg.UserPath(), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// Clear removes the token and user files. Missing files are not an error.
func (s *Store) Clear() error {
	for _, p := range []string{s.cfg.TokenPath(), s.cfg.UserPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (s *Store) readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("invalid %s: %w", path, err)
	}
	return true, nil
}

// TokenExpiry returns the "exp" claim when accessToken is a JWT.
// The signature is not checked; only the server can do that.
// ok is false for opaque tokens and JWTs without an expiry.
func TokenExpiry(accessToken string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	date, err := claims.GetExpirationTime()
	if err != nil || date == nil {
		return time.Time{}, false
	}
	return date.Time, true
}
