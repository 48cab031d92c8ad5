package models

import (
	"time"

	"github.com/google/uuid"
)

type PayoutRequest struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID    uuid.UUID  `gorm:"not null" json:"tutor_id"`
	Credits    int        `gorm:"not null" json:"credits"`
	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminNotes *string    `gorm:"type:text" json:"admin_notes"`

	Tutor TutorDetails `gorm:"foreignkey:TutorID;references:UserID" json:"tutor,omitempty"`

	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}
