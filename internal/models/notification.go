package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"` // Recipient
	GigID   uint   `gorm:"not null;index"`
	Message string `gorm:"not null"`
	Read    bool   `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Gig  Gig  `gorm:"foreignKey:GigID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
