package admin

import (
	"context"
	"errors"
	"strings"

	"church-registry-go/internal/auth"
	"github.com/google/uuid"
)

// TokenIssuer mints the bearer token returned on login.
type TokenIssuer interface {
	Generate(adminID string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, email, password string) (*Admin, string, error) {
	found, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.CheckPassword(found.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(found.ID)
	if err != nil {
		return nil, "", err
	}

	return found, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureSeedAdmin creates the bootstrap admin when no row with the given
// email exists yet. An empty email disables seeding.
func (s *Service) EnsureSeedAdmin(ctx context.Context, name, email, password string) (*Admin, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	created := Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}

	return &created, nil
}
