package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AgentTurn struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Message          string         `gorm:"type:text;not null"`
	Intent           string         `gorm:"type:varchar(40);not null"`
	AssistantMessage string         `gorm:"type:text"`
	RawResponse      string         `gorm:"type:text"`
	ParsedDelta      datatypes.JSON `gorm:"column:parsed_delta"`
	DraftSnapshot    datatypes.JSON `gorm:"column:draft_snapshot"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index"`
}

func (AgentTurn) TableName() string {
	return "agent_turns"
}
