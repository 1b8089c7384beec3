package unit

import (
	"context"
	"errors"
	"fmt"
	"time"

	unitdomain "church-registry-go/internal/domain/unit"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// kindTables maps each kind to its own table, the members column that
// references it, and the opposite relation attached to roster rows.
var kindTables = map[unitdomain.Kind]struct {
	table      string
	fkColumn   string
	otherTable string
	otherFK    string
}{
	unitdomain.KindGroup:  {table: "groups", fkColumn: "group_id", otherTable: "jumuias", otherFK: "jumuia_id"},
	unitdomain.KindJumuia: {table: "jumuias", fkColumn: "jumuia_id", otherTable: "groups", otherFK: "group_id"},
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(unitdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func tableInfo(kind unitdomain.Kind) (struct {
	table      string
	fkColumn   string
	otherTable string
	otherFK    string
}, error) {
	info, ok := kindTables[kind]
	if !ok {
		return info, fmt.Errorf("unknown unit kind %q", kind)
	}
	return info, nil
}

func (r *PostgresRepository) List(ctx context.Context, kind unitdomain.Kind) ([]unitdomain.UnitWithCount, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return nil, err
	}

	type unitRow struct {
		ID          string    `gorm:"column:id"`
		Name        string    `gorm:"column:name"`
		CreatedAt   time.Time `gorm:"column:created_at"`
		UpdatedAt   time.Time `gorm:"column:updated_at"`
		MemberCount int64     `gorm:"column:member_count"`
	}

	var rows []unitRow
	query := fmt.Sprintf(`
		SELECT u.id, u.name, u.created_at, u.updated_at, COUNT(m.id) AS member_count
		FROM %s u
		LEFT JOIN members m ON m.%s = u.id
		GROUP BY u.id, u.name, u.created_at, u.updated_at
		ORDER BY u.name ASC
	`, info.table, info.fkColumn)
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	units := make([]unitdomain.UnitWithCount, 0, len(rows))
	for _, row := range rows {
		units = append(units, unitdomain.UnitWithCount{
			Unit: unitdomain.Unit{
				ID:        row.ID,
				Name:      row.Name,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			MemberCount: row.MemberCount,
		})
	}
	return units, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, kind unitdomain.Kind, id string) (*unitdomain.Unit, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return nil, err
	}

	// a malformed uuid behaves like an absent row rather than a 22P02
	if _, err := uuid.Parse(id); err != nil {
		return nil, unitdomain.ErrNotFound
	}

	var found unitdomain.Unit
	err = r.db.WithContext(ctx).Table(info.table).Where("id = ?", id).Take(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, kind unitdomain.Kind, name string) (*unitdomain.Unit, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return nil, err
	}

	var found unitdomain.Unit
	err = r.db.WithContext(ctx).Table(info.table).Where("name = ?", name).Take(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) Create(ctx context.Context, kind unitdomain.Kind, u *unitdomain.Unit) error {
	info, err := tableInfo(kind)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf("INSERT INTO %s (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)", info.table),
		u.ID, u.Name, u.CreatedAt, u.UpdatedAt,
	).Error
}

func (r *PostgresRepository) UpdateName(ctx context.Context, kind unitdomain.Kind, id, name string) error {
	info, err := tableInfo(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE %s SET name = ?, updated_at = ? WHERE id = ?", info.table),
		name, time.Now().UTC(), id,
	).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, kind unitdomain.Kind, id string) error {
	info, err := tableInfo(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", info.table), id,
	).Error
}

func (r *PostgresRepository) CountMembers(ctx context.Context, kind unitdomain.Kind, id string) (int64, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Table("members").
		Where(info.fkColumn+" = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListMemberSummaries(ctx context.Context, kind unitdomain.Kind, id string) ([]unitdomain.MemberSummary, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return nil, err
	}

	type summaryRow struct {
		ID        string  `gorm:"column:id"`
		FirstName string  `gorm:"column:first_name"`
		LastName  string  `gorm:"column:last_name"`
		Gender    string  `gorm:"column:gender"`
		Phone     *string `gorm:"column:phone"`
		Status    string  `gorm:"column:status"`
	}

	var rows []summaryRow
	err = r.db.WithContext(ctx).
		Table("members").
		Select("id, first_name, last_name, gender, phone, status").
		Where(info.fkColumn+" = ?", id).
		Order("first_name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]unitdomain.MemberSummary, 0, len(rows))
	for _, row := range rows {
		members = append(members, unitdomain.MemberSummary{
			ID:        row.ID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Gender:    row.Gender,
			Phone:     row.Phone,
			Status:    row.Status,
		})
	}
	return members, nil
}

func (r *PostgresRepository) ListRoster(ctx context.Context, kind unitdomain.Kind, id string) ([]unitdomain.RosterMember, error) {
	info, err := tableInfo(kind)
	if err != nil {
		return nil, err
	}

	type rosterRow struct {
		ID               string     `gorm:"column:id"`
		FirstName        string     `gorm:"column:first_name"`
		LastName         string     `gorm:"column:last_name"`
		Gender           string     `gorm:"column:gender"`
		DateOfBirth      *time.Time `gorm:"column:date_of_birth"`
		Phone            *string    `gorm:"column:phone"`
		MaritalStatus    string     `gorm:"column:marital_status"`
		NumberOfChildren int        `gorm:"column:number_of_children"`
		Status           string     `gorm:"column:status"`
		GroupID          *string    `gorm:"column:group_id"`
		JumuiaID         *string    `gorm:"column:jumuia_id"`
		CreatedAt        time.Time  `gorm:"column:created_at"`
		OtherID          *string    `gorm:"column:other_id"`
		OtherName        *string    `gorm:"column:other_name"`
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.first_name, m.last_name, m.gender, m.date_of_birth, m.phone,
			m.marital_status, m.number_of_children, m.status, m.group_id, m.jumuia_id,
			m.created_at, o.id AS other_id, o.name AS other_name
		FROM members m
		LEFT JOIN %s o ON o.id = m.%s
		WHERE m.%s = ?
		ORDER BY m.first_name ASC
	`, info.otherTable, info.otherFK, info.fkColumn)

	var rows []rosterRow
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, err
	}

	roster := make([]unitdomain.RosterMember, 0, len(rows))
	for _, row := range rows {
		entry := unitdomain.RosterMember{
			ID:               row.ID,
			FirstName:        row.FirstName,
			LastName:         row.LastName,
			Gender:           row.Gender,
			DateOfBirth:      row.DateOfBirth,
			Phone:            row.Phone,
			MaritalStatus:    row.MaritalStatus,
			NumberOfChildren: row.NumberOfChildren,
			Status:           row.Status,
			GroupID:          row.GroupID,
			JumuiaID:         row.JumuiaID,
			CreatedAt:        row.CreatedAt,
		}
		if row.OtherID != nil && row.OtherName != nil {
			entry.Other = &unitdomain.Ref{ID: *row.OtherID, Name: *row.OtherName}
		}
		roster = append(roster, entry)
	}
	return roster, nil
}
