package member

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Member, error) {
	if err := s.checkReferences(ctx, s.repo, input.GroupID, input.JumuiaID); err != nil {
		return nil, err
	}

	maritalStatus := input.MaritalStatus
	if maritalStatus == "" {
		maritalStatus = MaritalSingle
	}
	status := input.Status
	if status == "" {
		status = StatusActive
	}

	created := Member{
		ID:               uuid.NewString(),
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Gender:           input.Gender,
		DateOfBirth:      input.DateOfBirth,
		Phone:            input.Phone,
		MaritalStatus:    maritalStatus,
		NumberOfChildren: input.NumberOfChildren,
		Status:           status,
		GroupID:          input.GroupID,
		JumuiaID:         input.JumuiaID,
	}
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, created.ID)
}

// Update merges the input into the stored row inside one transaction so
// concurrent partial updates cannot interleave reads and writes.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Member, error) {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.FirstName != nil {
			existing.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			existing.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.Gender != nil {
			existing.Gender = *input.Gender
		}
		if input.MaritalStatus != nil {
			existing.MaritalStatus = *input.MaritalStatus
		}
		if input.NumberOfChildren != nil {
			existing.NumberOfChildren = *input.NumberOfChildren
		}
		if input.Status != nil {
			existing.Status = *input.Status
		}
		if input.DateOfBirth.Set {
			existing.DateOfBirth = input.DateOfBirth.Value
		}
		if input.Phone.Set {
			existing.Phone = input.Phone.Value
		}
		if input.GroupID.Set {
			existing.GroupID = input.GroupID.Value
		}
		if input.JumuiaID.Set {
			existing.JumuiaID = input.JumuiaID.Value
		}

		if err := s.checkReferences(ctx, tx, existing.GroupID, existing.JumuiaID); err != nil {
			return err
		}

		return tx.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) checkReferences(ctx context.Context, repo Repository, groupID, jumuiaID *string) error {
	if groupID != nil {
		exists, err := repo.GroupExists(ctx, *groupID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrGroupNotFound
		}
	}
	if jumuiaID != nil {
		exists, err := repo.JumuiaExists(ctx, *jumuiaID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrJumuiaNotFound
		}
	}
	return nil
}
