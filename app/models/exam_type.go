package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExamType describes one kind of assessment, e.g. midterm or terminal exam.
// Weight is reserved for weighted composite reports and is not used when
// computing session metrics.
type ExamType struct {
	ID        string          `json:"id" validate:"required,uuid"`
	Code      string          `json:"code" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	MaxScore  decimal.Decimal `json:"max_score"`
	Weight    decimal.Decimal `json:"weight"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
