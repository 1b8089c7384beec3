package unit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, kind Kind) ([]UnitWithCount, error) {
	return s.repo.List(ctx, kind)
}

func (s *Service) Get(ctx context.Context, kind Kind, id string) (*Detail, error) {
	found, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountMembers(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMemberSummaries(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Unit:        *found,
		MemberCount: count,
		Members:     members,
	}, nil
}

func (s *Service) Create(ctx context.Context, kind Kind, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if _, err := s.repo.GetByName(ctx, kind, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created := Unit{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.repo.Create(ctx, kind, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) Update(ctx context.Context, kind Kind, id, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	found, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if other, err := s.repo.GetByName(ctx, kind, name); err == nil {
		if other.ID != id {
			return nil, ErrNameTaken
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.repo.UpdateName(ctx, kind, id, name); err != nil {
		return nil, err
	}

	found.Name = name
	return found, nil
}

// Delete refuses to remove a unit that still has members; the existence
// check, the count and the delete run in one transaction so a member
// assigned concurrently cannot slip past the guard.
func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetByID(ctx, kind, id); err != nil {
			return err
		}

		count, err := tx.CountMembers(ctx, kind, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &DeleteBlockedError{Kind: kind, Count: count}
		}

		return tx.Delete(ctx, kind, id)
	})
}

func (s *Service) Members(ctx context.Context, kind Kind, id string) ([]RosterMember, error) {
	if _, err := s.repo.GetByID(ctx, kind, id); err != nil {
		return nil, err
	}

	return s.repo.ListRoster(ctx, kind, id)
}
