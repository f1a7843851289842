package models

import (
	"time"
)

// DrawResult is an official Mega-Sena result as persisted from the public
// feed or from a manual pool closing.
type DrawResult struct {
	ID                 uint      `gorm:"primaryKey"`
	Contest            string    `gorm:"uniqueIndex;size:16"`
	Numbers            NumberSet `gorm:"size:120"`
	DrawDate           time.Time
	Accumulated        bool
	PrizeEstimateCents int64
	CreatedAt          time.Time
}
