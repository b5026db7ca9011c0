// Package auth is the console's login gate: one configured username and
// password, a remember-me flag, and a signed token for the HTTP API.
//
// This is not a security boundary. The credential pair is shared and fixed
// at start-up; there is no lockout, no user store and no revocation.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/pkg/logger"
)

// Flag keys in the key-value store. Either one set to "true" means logged in.
const (
	SessionKey   = "isp_auth"
	PermanentKey = "isp_auth_permanent"
)

const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginInProgress    = errors.New("login already in progress")
	ErrInvalidToken       = errors.New("invalid token")
)

type Config struct {
	Username     string
	PasswordHash string
	Secret       []byte
	LoginDelay   time.Duration
}

type Claims struct {
	Username string `json:"username"`
	Remember bool   `json:"remember"`
	jwt.RegisteredClaims
}

type Service struct {
	cfg      Config
	kv       kvstore.Store
	clock    clock.Clock
	inFlight atomic.Bool
	logger   *logger.Logger
}

func NewService(cfg Config, kv kvstore.Store, clk clock.Clock, log *logger.Logger) *Service {
	return &Service{cfg: cfg, kv: kv, clock: clk, logger: log.With("component", "auth")}
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login waits out the login delay, checks the credentials, records the
// session flags and returns an API token. A second Login while one is
// waiting fails with ErrLoginInProgress.
func (s *Service) Login(ctx context.Context, username, password string, remember bool) (string, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return "", ErrLoginInProgress
	}
	defer s.inFlight.Store(false)

	if err := s.clock.Sleep(ctx, s.cfg.LoginDelay); err != nil {
		return "", err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		s.logger.Warn("Login failed - invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	if remember {
		if err := s.kv.Set(ctx, PermanentKey, "true"); err != nil {
			return "", fmt.Errorf("failed to store session flag: %w", err)
		}
	}
	if err := s.kv.Set(ctx, SessionKey, "true"); err != nil {
		return "", fmt.Errorf("failed to store session flag: %w", err)
	}

	token, err := s.IssueToken(username, remember)
	if err != nil {
		s.logger.Error("Failed to generate JWT", "error", err)
		return "", err
	}

	s.logger.Info("User logged in", "username", username, "remember", remember)
	return token, nil
}

// IsAuthenticated reports whether either session flag is set.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	for _, key := range []string{PermanentKey, SessionKey} {
		v, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if ok && v == "true" {
			return true, nil
		}
	}
	return false, nil
}

// Logout clears both session flags.
func (s *Service) Logout(ctx context.Context) error {
	for _, key := range []string{SessionKey, PermanentKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	s.logger.Info("User logged out")
	return nil
}

func (s *Service) IssueToken(username string, remember bool) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Username: username,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// ParseToken verifies signature and expiry against the service clock.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
