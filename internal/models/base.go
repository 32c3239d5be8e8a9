package models

import "time"

// Base contains common columns for all tables.
//
// Primary keys are auto-incrementing integers on purpose: the consistency
// engine tells the source leg of a transfer pair from the destination leg by
// insertion order, so ids must be assigned monotonically by the store.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
