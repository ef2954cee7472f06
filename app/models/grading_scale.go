package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GradingScale maps a percentage interval to a grade, grade points and a remark
// for one educational level. Intervals for a level are disjoint and cover 0-100.
type GradingScale struct {
	ID        string          `json:"id" validate:"required,uuid"`
	Level     LevelCode       `json:"level" validate:"required"`
	Grade     string          `json:"grade" validate:"required"`
	MinMark   decimal.Decimal `json:"min_mark"`
	MaxMark   decimal.Decimal `json:"max_mark"`
	Points    decimal.Decimal `json:"points"`
	Remark    string          `json:"remark"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Contains reports whether pct falls inside the scale's inclusive interval.
func (g *GradingScale) Contains(pct decimal.Decimal) bool {
	return pct.GreaterThanOrEqual(g.MinMark) && pct.LessThanOrEqual(g.MaxMark)
}
