package admin

import (
	"context"
	"errors"

	admindomain "church-registry-go/internal/domain/admin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*admindomain.Admin, error) {
	// token subjects are attacker controlled; a malformed uuid is just
	// an unknown admin, not a query error
	if _, err := uuid.Parse(id); err != nil {
		return nil, admindomain.ErrAdminNotFound
	}

	var found admindomain.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admindomain.ErrAdminNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*admindomain.Admin, error) {
	var found admindomain.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admindomain.ErrAdminNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *admindomain.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}
