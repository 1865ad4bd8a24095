package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ByNameInsensitive matches an exact name ignoring case and surrounding spaces.
type ByNameInsensitive struct {
	Name string
}

func (s ByNameInsensitive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(TRIM(name)) = LOWER(?)", strings.TrimSpace(s.Name))
}
