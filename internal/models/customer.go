package models

import "time"

// No uniqueness on email or license number; the rental desk may re-enter
// the same person.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null"`
	Email     string `gorm:"size:150"`
	Phone     string `gorm:"size:50"`
	LicenseNo string `gorm:"size:120"`
	Address   string `gorm:"type:text"`
	Bookings  []Booking `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
