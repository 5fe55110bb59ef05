package models

import "time"

// Car statuses. Status is the only field mutated by business rules
// (booking and service side effects); everything else is admin-edited.
const (
	CarAvailable   = "available"
	CarRented      = "rented"
	CarMaintenance = "maintenance"
)

type Car struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;not null"`
	Brand       string `gorm:"size:120"`
	Model       string `gorm:"size:120"`
	Year        int
	PricePerDay float64 `gorm:"default:0"`
	Status      string  `gorm:"size:50;default:'available'"`
	Description string  `gorm:"type:text"`
	// Deleting a car removes its bookings and service history with it.
	Bookings  []Booking `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	Services  []Service `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
