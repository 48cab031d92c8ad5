package services

import (
	"fmt"
	"math"

	"github.com/kiprotich-dev/lingua_connect/models"
)

const (
	// Trial sessions are priced at a quarter of the tutor's standard rate.
	TrialPriceFactor = 0.25

	// Platform fee on standard sessions. Trial sessions pay out in full.
	StandardPlatformFeePct = 20
)

// SessionPrice returns the credit price a student pays for a slot of the given
// type, derived from the tutor's per-session rate.
func SessionPrice(sessionType string, requiredCredits int) int {
	if sessionType == models.SessionTypeTrial {
		return int(math.Round(TrialPriceFactor * float64(requiredCredits)))
	}
	return requiredCredits
}

// NoShowBonus is the make-good credited on top of the refund when the tutor
// fails to show: floor(0.1 * credits).
func NoShowBonus(credits int) int {
	return credits / 10
}

// Settlement describes what happens to the credits a student paid for a
// booking, together with the message shown on the session list.
type Settlement struct {
	RefundCredits int    `json:"refund_credits"`
	BonusCredits  int    `json:"bonus_credits"`
	Message       string `json:"message"`
}

// SettleBooking computes the credit settlement for a booking. A missed session
// (neither party joined) retains the credits regardless of the stored status.
func SettleBooking(b models.Booking, missed bool) Settlement {
	r := b.CreditsPaid
	if missed {
		return Settlement{Message: fmt.Sprintf("%d credits retained by platform", r)}
	}
	switch b.Status {
	case models.BookingCanceledByStudent, models.BookingCanceledByTutor, models.BookingExpired:
		return Settlement{
			RefundCredits: r,
			Message:       fmt.Sprintf("%d credits refunded", r),
		}
	case models.BookingNoShowByTutor:
		bonus := NoShowBonus(r)
		return Settlement{
			RefundCredits: r + bonus,
			BonusCredits:  bonus,
			Message:       fmt.Sprintf("%d credits refunded, including a %d credit bonus", r+bonus, bonus),
		}
	}
	return Settlement{Message: fmt.Sprintf("%d credits paid", r)}
}

// TutorShare is what the tutor earns from a paid session. Standard sessions
// carry the platform fee; trial sessions do not.
func TutorShare(sessionType string, credits int) int {
	if sessionType == models.SessionTypeTrial {
		return credits
	}
	return credits - credits*StandardPlatformFeePct/100
}

// PlatformShare is the portion of a paid session retained by the platform.
func PlatformShare(sessionType string, credits int) int {
	return credits - TutorShare(sessionType, credits)
}
