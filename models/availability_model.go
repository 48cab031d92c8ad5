package models

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilitySlot struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID         uuid.UUID `gorm:"not null" json:"tutor_id"`
	SessionType     string    `gorm:"size:20;not null;default:'standard'" json:"session_type"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	IsBooked        bool      `gorm:"not null;default:false" json:"is_booked"`
	CreditsRequired int       `gorm:"not null" json:"credits_required"`
	LanguageToTeach string    `gorm:"size:100;not null" json:"language_to_teach"`

	Bookings []Booking `gorm:"foreignkey:AvailabilitySlotID" json:"bookings"`
	Tutor    User      `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
