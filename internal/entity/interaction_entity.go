package entity

import "time"

type Interaction struct {
	ID                 uint
	HCPID              uint
	InteractionType    string
	Date               string
	Time               string
	Attendees          string
	TopicsDiscussed    string
	MaterialsShared    string
	SamplesDistributed string
	ConsentRequired    bool
	OccurredAt         string
	Sentiment          string
	ProductsDiscussed  string
	Summary            string
	Outcomes           string
	FollowUps          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
