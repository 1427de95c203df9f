package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GigStatusOpen     = "open"
	GigStatusAssigned = "assigned"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Gig amounts are stored in the smallest currency unit (cents).
type Gig struct {
	gorm.Model

	UserID        uint   `gorm:"not null;index"` // Owner
	Title         string `gorm:"not null"`
	Description   string
	Amount        int64  `gorm:"not null"`
	Status        string `gorm:"not null;default:open"`
	PaymentStatus string `gorm:"not null;default:pending"`
	PaymentRef    string
	AssignedTo    *uint `gorm:"index"`
	AssignedAt    *time.Time

	// Relationships
	Owner        User          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Applications []Application `gorm:"foreignKey:GigID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
