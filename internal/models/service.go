package models

import "time"

// Maintenance/service record. Creating one flips the car to maintenance;
// editing or deleting one leaves the car's status alone.
type Service struct {
	ID          uint `gorm:"primaryKey"`
	CarID       uint `gorm:"not null;index"`
	Car         Car  `gorm:"foreignKey:CarID"`
	ServiceDate time.Time `gorm:"type:date"`
	ServiceType string    `gorm:"size:200"`
	Cost        float64   `gorm:"default:0"`
	Remarks     string    `gorm:"type:text"`
	CreatedAt   time.Time
}
