// Package unit models the two named collections a member may belong to:
// ministry groups and jumuias. Both share one schema shape and one set of
// operations, so the domain is parameterized by Kind over two independent
// tables.
package unit

import "time"

type Kind string

const (
	KindGroup  Kind = "group"
	KindJumuia Kind = "jumuia"
)

// Title returns the capitalized kind name used in user-facing messages.
func (k Kind) Title() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindJumuia:
		return "Jumuia"
	default:
		return string(k)
	}
}

type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Group and Jumuia are the persisted shapes behind Unit; members preload
// them for the {id, name} annotations.
type Group struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Jumuia struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Ref is the {id, name} summary attached to member payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UnitWithCount struct {
	Unit
	MemberCount int64
}

// MemberSummary is the roster line embedded in a unit detail.
type MemberSummary struct {
	ID        string
	FirstName string
	LastName  string
	Gender    string
	Phone     *string
	Status    string
}

// RosterMember is a full member row annotated with the other relation's
// ref: a group roster carries each member's jumuia and vice versa.
type RosterMember struct {
	ID               string
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
	CreatedAt        time.Time
	Other            *Ref
}

type Detail struct {
	Unit
	MemberCount int64
	Members     []MemberSummary
}
