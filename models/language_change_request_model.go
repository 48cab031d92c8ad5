package models

import (
	"time"

	"github.com/google/uuid"
)

type LanguageChangeRequest struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID           uuid.UUID `gorm:"not null" json:"tutor_id"`
	CurrentLanguage   string    `gorm:"size:100;not null" json:"current_language"`
	RequestedLanguage string    `gorm:"size:100;not null" json:"requested_language"`
	CertificateURL    *string   `gorm:"size:255" json:"certificate_url"`
	Status            string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Tutor User `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}
