package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses. A booking starts out confirmed and moves along
// confirmed -> {ongoing -> completed} | canceled_by_student | canceled_by_tutor |
// no_show_by_student | no_show_by_tutor. Expired is reserved for bookings voided
// by a tutor account deactivation.
const (
	BookingConfirmed        = "confirmed"
	BookingOngoing          = "ongoing"
	BookingCompleted        = "completed"
	BookingCanceledByStudent = "canceled_by_student"
	BookingCanceledByTutor   = "canceled_by_tutor"
	BookingNoShowByStudent   = "no_show_by_student"
	BookingNoShowByTutor     = "no_show_by_tutor"
	BookingExpired           = "expired"
)

const (
	SessionTypeTrial    = "trial"
	SessionTypeStandard = "standard"
)

type Booking struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AvailabilitySlotID uuid.UUID `gorm:"not null" json:"availability_slot_id"`
	StudentID          uuid.UUID `gorm:"not null" json:"student_id"`
	TutorID            uuid.UUID `gorm:"not null" json:"tutor_id"`
	Status             string    `gorm:"size:30;not null;default:'confirmed'" json:"booking_status"`
	CreditsPaid        int       `gorm:"not null" json:"credits_paid"`

	StudentJoinedAt         *time.Time `json:"student_joined_at"`
	TutorJoinedAt           *time.Time `json:"tutor_joined_at"`
	StudentJoinedWithin5Min bool       `gorm:"default:false" json:"student_joined_within_5_min"`
	TutorJoinedWithin5Min   bool       `gorm:"default:false" json:"tutor_joined_within_5_min"`

	VideoCallLink *string `gorm:"size:255" json:"video_call_link"`

	Student          User             `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor            User             `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	AvailabilitySlot AvailabilitySlot `gorm:"foreignkey:AvailabilitySlotID" json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
