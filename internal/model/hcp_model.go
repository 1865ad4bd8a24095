package model

import "time"

type HCP struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null;index"`
	Specialty string    `gorm:"type:varchar(120)"`
	City      string    `gorm:"type:varchar(120)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (HCP) TableName() string {
	return "hcps"
}
