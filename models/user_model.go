package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName       string    `gorm:"size:255;not null" json:"full_name"`
	Email          string    `gorm:"size:255;not null;unique" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:20;not null;default:'student'" json:"role"`
	BalanceCredits int       `gorm:"not null;default:0" json:"balance_credits"`

	CountryID       *uuid.UUID        `json:"country_id"`
	Country         *Country          `gorm:"foreignkey:CountryID" json:"country,omitempty"`
	LanguagesSpoken []*SpokenLanguage `gorm:"many2many:user_spoken_languages;" json:"language_spoken"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	TimeZone          *string `gorm:"size:100" json:"time_zone"`
	About             *string `gorm:"type:text" json:"about"`

	TutorDetails *TutorDetails `gorm:"foreignkey:UserID" json:"tutor_details,omitempty"`

	OTPCode      *string    `gorm:"size:6" json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
