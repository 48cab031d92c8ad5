package models

import "github.com/google/uuid"

// SpokenLanguage is the catalog users pick their spoken languages from.
type SpokenLanguage struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;unique" json:"name"`
}

// PlatformLanguage is a language tutors may teach on the platform.
type PlatformLanguage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:100;not null;unique" json:"name"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
}

type Country struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;unique" json:"name"`
	Code string    `gorm:"size:2;not null;unique" json:"code"`
}
