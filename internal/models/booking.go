package models

import "time"

const (
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// TotalCost is stored, not computed at read time: it is derived from the
// car's price_per_day and the date span whenever the booking is written.
type Booking struct {
	ID         uint     `gorm:"primaryKey"`
	CarID      uint     `gorm:"not null;index"`
	Car        Car      `gorm:"foreignKey:CarID"`
	CustomerID uint     `gorm:"not null;index"`
	Customer   Customer `gorm:"foreignKey:CustomerID"`
	StartDate  time.Time `gorm:"type:date;not null"`
	EndDate    time.Time `gorm:"type:date;not null"`
	TotalCost  float64   `gorm:"default:0"`
	Status     string    `gorm:"size:50;default:'active'"`
	CreatedAt  time.Time
}
