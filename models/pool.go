package models

import (
	"time"
)

type PoolStatus string

const (
	PoolActive   PoolStatus = "active"
	PoolClosed   PoolStatus = "closed"
	PoolCanceled PoolStatus = "canceled"
)

// Domain-wide Mega-Sena constants.
const (
	NumbersPerEntry = 10
	MinNumber       = 1
	MaxNumber       = 60
	ResultSize      = 6

	DefaultEntryPriceCents = 5000
	DefaultOrganizerFeePct = 10
	MaxOrganizerFeePct     = 30
)

// Pool is one Mega-Sena round being pooled ("bolão"). Contest holds the
// official contest number as published by Caixa.
type Pool struct {
	ID              string `gorm:"primaryKey;size:36"`
	Name            string `gorm:"size:100"`
	Contest         string `gorm:"size:16"`
	DrawDate        time.Time
	EntryPriceCents int64
	OrganizerFeePct int64
	Status          PoolStatus `gorm:"size:16;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
