package models

import (
	"time"
)

type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryPaid     EntryStatus = "paid"
	EntryCanceled EntryStatus = "canceled"
)

// Entry is one participant's bet inside a pool ("jogo"). Numbers is frozen
// at creation; only Status, PaymentID and PaidAt change afterwards.
type Entry struct {
	ID         string    `gorm:"primaryKey;size:36"`
	PoolID     string    `gorm:"index;size:36"`
	Pool       Pool      `gorm:"foreignKey:PoolID"`
	Name       string    `gorm:"size:100"`
	Phone      string    `gorm:"index;size:11"`
	Numbers    NumberSet `gorm:"size:120"`
	PriceCents int64
	Status     EntryStatus `gorm:"size:16;index"`
	PaymentID  *string     `gorm:"size:64"`
	PaidAt     *time.Time
	CreatedAt  time.Time
}
