package model

import "time"

type Interaction struct {
	ID                 uint      `gorm:"primaryKey"`
	HCPID              uint      `gorm:"column:hcp_id;not null;index"`
	HCP                *HCP      `gorm:"foreignKey:HCPID;constraint:OnDelete:CASCADE"`
	InteractionType    string    `gorm:"type:varchar(60);not null;default:Visit"`
	Date               string    `gorm:"type:varchar(20)"`
	Time               string    `gorm:"type:varchar(20)"`
	Attendees          string    `gorm:"type:text"`
	TopicsDiscussed    string    `gorm:"type:text"`
	MaterialsShared    string    `gorm:"type:text"`
	SamplesDistributed string    `gorm:"type:text"`
	ConsentRequired    bool      `gorm:"not null;default:false"`
	OccurredAt         string    `gorm:"type:varchar(60)"`
	Sentiment          string    `gorm:"type:varchar(20);not null;default:neutral"`
	ProductsDiscussed  string    `gorm:"type:text"`
	Summary            string    `gorm:"type:text"`
	Outcomes           string    `gorm:"type:text"`
	FollowUps          string    `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Interaction) TableName() string {
	return "interactions"
}
