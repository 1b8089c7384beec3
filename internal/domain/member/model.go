package member

import (
	"time"

	"church-registry-go/internal/domain/unit"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"

	MaritalSingle   = "SINGLE"
	MaritalMarried  = "MARRIED"
	MaritalWidowed  = "WIDOWED"
	MaritalDivorced = "DIVORCED"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

func ValidGender(value string) bool {
	return value == GenderMale || value == GenderFemale
}

func ValidMaritalStatus(value string) bool {
	switch value {
	case MaritalSingle, MaritalMarried, MaritalWidowed, MaritalDivorced:
		return true
	}
	return false
}

func ValidStatus(value string) bool {
	return value == StatusActive || value == StatusInactive
}

type Member struct {
	ID               string       `gorm:"type:uuid;primaryKey"`
	FirstName        string       `gorm:"not null"`
	LastName         string       `gorm:"not null"`
	Gender           string       `gorm:"type:varchar(8);not null"`
	DateOfBirth      *time.Time   `gorm:"type:date"`
	Phone            *string      `gorm:"type:text"`
	MaritalStatus    string       `gorm:"type:varchar(16);not null;default:SINGLE"`
	NumberOfChildren int          `gorm:"not null;default:0"`
	Status           string       `gorm:"type:varchar(8);not null;default:ACTIVE"`
	GroupID          *string      `gorm:"type:uuid;index"`
	JumuiaID         *string      `gorm:"type:uuid;index"`
	Group            *unit.Group  `gorm:"foreignKey:GroupID"`
	Jumuia           *unit.Jumuia `gorm:"foreignKey:JumuiaID"`
	CreatedAt        time.Time    `gorm:"autoCreateTime"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime"`
}

// ListFilter is conjunctive: every non-empty field narrows the result.
type ListFilter struct {
	Search        string
	Gender        string
	MaritalStatus string
	JumuiaID      string
	GroupID       string
	Status        string
	Limit         int
	Offset        int
}

type CreateInput struct {
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      *time.Time
	Phone            *string
	MaritalStatus    string
	NumberOfChildren int
	Status           string
	GroupID          *string
	JumuiaID         *string
}

// UpdateInput merges into the stored row. Plain pointers mean
// "absent = keep"; Optional fields additionally distinguish an explicit
// null ("clear") from a value.
type UpdateInput struct {
	FirstName        *string
	LastName         *string
	Gender           *string
	DateOfBirth      OptionalDate
	Phone            OptionalString
	MaritalStatus    *string
	NumberOfChildren *int
	Status           *string
	GroupID          OptionalString
	JumuiaID         OptionalString
}

type Stats struct {
	Total    int64
	Active   int64
	Inactive int64
	Male     int64
	Female   int64
	Married  int64
	Single   int64
}
