package models

import "gorm.io/gorm"

const ApplicationStatusPending = "pending"

// The composite unique index makes duplicate applications lose at the
// store even when two requests race past the existence check.
type Application struct {
	gorm.Model

	UserID uint   `gorm:"not null;uniqueIndex:idx_applicant_gig"`
	GigID  uint   `gorm:"not null;uniqueIndex:idx_applicant_gig"`
	Status string `gorm:"not null;default:pending"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Gig  Gig  `gorm:"foreignKey:GigID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
