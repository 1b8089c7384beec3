package unit

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, kind Kind) ([]UnitWithCount, error)
	GetByID(ctx context.Context, kind Kind, id string) (*Unit, error)
	GetByName(ctx context.Context, kind Kind, name string) (*Unit, error)
	Create(ctx context.Context, kind Kind, unit *Unit) error
	UpdateName(ctx context.Context, kind Kind, id, name string) error
	Delete(ctx context.Context, kind Kind, id string) error
	CountMembers(ctx context.Context, kind Kind, id string) (int64, error)
	ListMemberSummaries(ctx context.Context, kind Kind, id string) ([]MemberSummary, error)
	ListRoster(ctx context.Context, kind Kind, id string) ([]RosterMember, error)
}
