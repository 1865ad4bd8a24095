package entity

import "time"

type HCP struct {
	ID        uint
	Name      string
	Specialty string
	City      string
	CreatedAt time.Time
}
