package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DivisionScale maps a total-grade-points interval to a division band
// for one educational level.
type DivisionScale struct {
	ID        string          `json:"id" validate:"required,uuid"`
	Level     LevelCode       `json:"level" validate:"required"`
	Division  Division        `json:"division" validate:"required"`
	MinPoints decimal.Decimal `json:"min_points"`
	MaxPoints decimal.Decimal `json:"max_points"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Contains reports whether points falls inside the band's inclusive interval.
func (d *DivisionScale) Contains(points decimal.Decimal) bool {
	return points.GreaterThanOrEqual(d.MinPoints) && points.LessThanOrEqual(d.MaxPoints)
}
