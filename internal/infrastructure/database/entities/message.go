package entities

import "time"

// Message is the durable chat log row. Rows are append-only; the id is
// assigned by sqlite and ordering by id matches insertion order.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Role      string    `gorm:"size:16;not null"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}
