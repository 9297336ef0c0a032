package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"relwatch/internal/logging"
	"relwatch/internal/models"
	"relwatch/internal/repository"
	"relwatch/internal/track"
)

// ErrBadCredentials is returned for any login failure; the reason is not
// leaked to the caller.
var ErrBadCredentials = errors.New("invalid username or password")

// AuthService registers users and issues session tokens.
type AuthService struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, secret: []byte(jwtSecret), tokenTTL: 72 * time.Hour}
}

// Register creates a new login after checking password strength.
func (a *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: username and password are required", track.ErrValidation)
	}
	if !strongPassword(password) {
		return fmt.Errorf("%w: password does not meet the strength requirements", track.ErrValidation)
	}
	if _, err := a.users.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: user already exists", track.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = a.users.Create(ctx, models.User{Username: username, Password: string(hash)})
	return err
}

// Login verifies credentials and returns a signed bearer token.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		logging.Logger.Warnf("Login failed for unknown user %q", username)
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logging.Logger.Warnf("Password mismatch for user %q", username)
		return "", ErrBadCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// AnyUserExists reports whether registration has happened yet; the dashboard
// shows the register form on first run.
func (a *AuthService) AnyUserExists(ctx context.Context) (bool, error) {
	count, err := a.users.Count(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return count > 0, nil
}

// strongPassword requires 12+ characters with lower, upper, digit and
// special classes all present.
func strongPassword(password string) bool {
	if len(password) < 12 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
