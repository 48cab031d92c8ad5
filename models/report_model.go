package models

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReporterID     uuid.UUID  `gorm:"not null" json:"reporter_id"`
	ReportedUserID uuid.UUID  `gorm:"not null" json:"reported_user_id"`
	BookingID      *uuid.UUID `json:"booking_id"`
	Reason         string     `gorm:"size:100;not null" json:"reason"`
	Details        string     `gorm:"type:text" json:"details"`
	Status         string     `gorm:"size:20;not null;default:'open'" json:"status"`
	AdminNotes     *string    `gorm:"type:text" json:"admin_notes"`

	Reporter     User `gorm:"foreignkey:ReporterID" json:"reporter,omitempty"`
	ReportedUser User `gorm:"foreignkey:ReportedUserID" json:"reported_user,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}
