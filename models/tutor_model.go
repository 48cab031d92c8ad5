package models

import (
	"time"

	"github.com/google/uuid"
)

type TutorDetails struct {
	UserID          uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline        *string   `gorm:"size:255" json:"headline"`
	Bio             *string   `gorm:"type:text" json:"bio"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	LanguageToTeach string    `gorm:"size:100;not null" json:"language_to_teach"`
	RequiredCredits int       `gorm:"not null;default:0" json:"required_credits"`

	IntroVideoURL  *string `gorm:"size:255" json:"intro_video_url"`
	CertificateURL *string `gorm:"size:255" json:"certificate_url"`

	AvgRating     float32 `gorm:"default:0" json:"avg_rating"`
	EarnedCredits int     `gorm:"not null;default:0" json:"-"`

	User      User      `gorm:"foreignkey:UserID" json:"user"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
