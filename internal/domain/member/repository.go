package member

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// List returns the page matching the filter plus the pre-pagination total.
	List(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
	GroupExists(ctx context.Context, id string) (bool, error)
	JumuiaExists(ctx context.Context, id string) (bool, error)
}
