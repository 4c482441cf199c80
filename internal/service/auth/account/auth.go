package service_account_auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moviepair/core/internal/model"
	"golang.org/x/crypto/bcrypt"
)

type Token = string

const minPasswordLen = 6

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserExists       = errors.New("user already exists")
	ErrWrongPassword    = errors.New("wrong password")
	ErrResourceNotFound = errors.New("no such user")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=AccountStore --output=./mocks/accounts --filename=accounts.go
type AccountStore interface {
	Get(ctx context.Context, email string) (model.User, bool, error)
	Save(ctx context.Context, email string, user model.User) error
}

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
}

type Service struct {
	accounts AccountStore
	sessions SessionCache
	ttl      time.Duration
}

func New(accounts AccountStore, sessions SessionCache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{
		accounts: accounts,
		sessions: sessions,
		ttl:      ttl,
	}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return model.User{}, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return model.User{}, ErrInvalidInput
	}

	if _, ok, err := s.accounts.Get(ctx, email); err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	} else if ok {
		return model.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}

	user := model.User{Email: email, Name: strings.TrimSpace(name), Password: hash}
	if err := s.accounts.Save(ctx, email, user); err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (model.User, Token, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, "", ErrInvalidInput
	}

	user, ok, err := s.accounts.Get(ctx, email)
	if err != nil {
		return model.User{}, "", errors.Join(ErrInternal, err)
	}
	if !ok {
		return model.User{}, "", ErrResourceNotFound
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return model.User{}, "", ErrWrongPassword
	}

	token := s.genToken()
	if err := s.sessions.Set(token, email, s.ttl); err != nil {
		return model.User{}, "", errors.Join(ErrInternal, err)
	}
	return user, token, nil
}

// SessionEmail resolves a session token to the owning email; empty means
// unknown or expired.
func (s *Service) SessionEmail(token Token) (string, error) {
	email, err := s.sessions.Get(token)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return email, nil
}

func (s *Service) genToken() Token {
	return uuid.New().String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
