package models

import (
	"time"

	"github.com/google/uuid"
)

// Credit ledger entry kinds.
const (
	TxnPurchase = "purchase"
	TxnBooking  = "booking"
	TxnRefund   = "refund"
	TxnBonus    = "bonus"
	TxnEarning  = "earning"
	TxnPayout   = "payout"
)

type CreditTransaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"not null" json:"user_id"`
	BookingID *uuid.UUID `json:"booking_id"`
	Type      string     `gorm:"size:20;not null" json:"type"`
	Credits   int        `gorm:"not null" json:"credits"`
	Status    string     `gorm:"size:20;not null;default:'succeeded'" json:"status"`

	// Set for purchases paid through the hosted checkout provider.
	Amount            *float64 `gorm:"type:numeric(10,2)" json:"amount"`
	Currency          *string  `gorm:"size:3" json:"currency"`
	ProviderSessionID *string  `gorm:"size:255;unique" json:"-"`
	ReceiptURL        *string  `gorm:"size:255" json:"receipt_url"`

	User    User     `gorm:"foreignkey:UserID" json:"-"`
	Booking *Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
