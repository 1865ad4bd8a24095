package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByHCPID struct {
	HCPID uint
}

func (s ByHCPID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hcp_id = ?", s.HCPID)
}

// Agent turn specs

type ByTurnID struct {
	ID uuid.UUID
}

func (s ByTurnID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
