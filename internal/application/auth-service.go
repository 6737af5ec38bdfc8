package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const minPasswordLen = 6

type session struct {
	username  string
	expiresAt time.Time
}

// AuthService handles login and account management. Sessions live in memory
// only; a restart logs everyone out, which is fine for a single-user tool.
type AuthService struct {
	repo repository.UserRepo
	ttl  time.Duration

	mu       sync.RWMutex
	sessions map[string]session
}

func NewAuthService(r repository.UserRepo, ttl time.Duration) *AuthService {
	return &AuthService{
		repo:     r,
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// EnsureDefaultAdmin creates admin/password when the users table is empty.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &domain.User{Username: "admin", PasswordHash: string(hash)}
	if err := s.repo.AddUser(ctx, u); err != nil {
		return err
	}
	logger.Info("no users found, default admin user created", "username", u.Username)
	return nil
}

// Login checks credentials and returns an opaque session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{username: username, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Validate returns the username behind a live session token, or "".
func (s *AuthService) Validate(token string) string {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return ""
	}
	if time.Now().After(sess.expiresAt) {
		s.Logout(token)
		return ""
	}
	return sess.username
}

func (s *AuthService) ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrWeakPassword
	}

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, username, string(hash))
}

// ChangeUsername renames the account and rewrites the live sessions so the
// caller stays logged in.
func (s *AuthService) ChangeUsername(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrValidation
	}

	err := s.repo.UpdateUsername(ctx, oldName, newName)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	for token, sess := range s.sessions {
		if sess.username == oldName {
			sess.username = newName
			s.sessions[token] = sess
		}
	}
	s.mu.Unlock()
	return nil
}
