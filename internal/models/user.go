package models

import "time"

// Admin account. Exactly one is seeded at first startup; there is no
// registration flow.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;unique;not null;index"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;default:'admin'"`
	CreatedAt    time.Time
}
