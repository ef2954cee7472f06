package models

import "time"

// Subject is one teachable subject at a level. Compulsory subjects count for
// every student of the level; the rest are electives.
type Subject struct {
	ID           string    `json:"id" validate:"required,uuid"`
	Code         string    `json:"code" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Level        LevelCode `json:"level" validate:"required"`
	IsCompulsory bool      `json:"is_compulsory"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
