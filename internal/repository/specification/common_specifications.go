package specification

import (
	"fmt"

	"hcp-crm-be/internal/repository/scope"

	"gorm.io/gorm"
)

// ByID filters by primary key
type ByID struct {
	ID uint
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// LatestFirst orders newest rows first, breaking created_at ties by id.
type LatestFirst struct{}

func (s LatestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedDesc, scope.OrderByIDDesc)
}

// OldestFirst orders rows chronologically.
type OldestFirst struct{}

func (s OldestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedAsc)
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
