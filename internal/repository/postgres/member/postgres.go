package member

import (
	"context"
	"errors"
	"strings"

	memberdomain "church-registry-go/internal/domain/member"
	"church-registry-go/internal/domain/unit"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context, filter memberdomain.ListFilter) ([]memberdomain.Member, int64, error) {
	// a malformed uuid filter can match nothing; comparing it against a
	// uuid column would raise 22P02 instead
	if (filter.GroupID != "" && !isUUID(filter.GroupID)) ||
		(filter.JumuiaID != "" && !isUUID(filter.JumuiaID)) {
		return nil, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&memberdomain.Member{})

	if filter.Search != "" {
		like := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.MaritalStatus != "" {
		query = query.Where("marital_status = ?", filter.MaritalStatus)
	}
	if filter.JumuiaID != "" {
		query = query.Where("jumuia_id = ?", filter.JumuiaID)
	}
	if filter.GroupID != "" {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc").Preload("Group").Preload("Jumuia")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []memberdomain.Member
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	if !isUUID(id) {
		return nil, memberdomain.ErrMemberNotFound
	}

	var found memberdomain.Member
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Jumuia").
		Where("id = ?", id).
		First(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).Omit("Group", "Jumuia").Create(m).Error
}

func (r *PostgresRepository) Update(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"first_name":         m.FirstName,
			"last_name":          m.LastName,
			"gender":             m.Gender,
			"date_of_birth":      m.DateOfBirth,
			"phone":              m.Phone,
			"marital_status":     m.MaritalStatus,
			"number_of_children": m.NumberOfChildren,
			"status":             m.Status,
			"group_id":           m.GroupID,
			"jumuia_id":          m.JumuiaID,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	result := r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// Stats tallies all seven counts in one aggregate pass; each FILTER clause
// matches the corresponding standalone count.
func (r *PostgresRepository) Stats(ctx context.Context) (memberdomain.Stats, error) {
	var row struct {
		Total    int64
		Active   int64
		Inactive int64
		Male     int64
		Female   int64
		Married  int64
		Single   int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'ACTIVE') AS active,
			COUNT(*) FILTER (WHERE status = 'INACTIVE') AS inactive,
			COUNT(*) FILTER (WHERE gender = 'MALE') AS male,
			COUNT(*) FILTER (WHERE gender = 'FEMALE') AS female,
			COUNT(*) FILTER (WHERE marital_status = 'MARRIED') AS married,
			COUNT(*) FILTER (WHERE marital_status = 'SINGLE') AS single
		FROM members
	`).Scan(&row).Error
	if err != nil {
		return memberdomain.Stats{}, err
	}

	return memberdomain.Stats{
		Total:    row.Total,
		Active:   row.Active,
		Inactive: row.Inactive,
		Male:     row.Male,
		Female:   row.Female,
		Married:  row.Married,
		Single:   row.Single,
	}, nil
}

func (r *PostgresRepository) GroupExists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&unit.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) JumuiaExists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&unit.Jumuia{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches as a literal substring.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
