package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiprotich-dev/lingua_connect/models"
)

func TestSessionPrice(t *testing.T) {
	assert.Equal(t, 40, SessionPrice(models.SessionTypeStandard, 40))
	assert.Equal(t, 10, SessionPrice(models.SessionTypeTrial, 40))
	assert.Equal(t, 25, SessionPrice(models.SessionTypeTrial, 99))
	assert.Equal(t, 25, SessionPrice(models.SessionTypeTrial, 100))
	assert.Equal(t, 1, SessionPrice(models.SessionTypeTrial, 2))
}

func TestNoShowBonus(t *testing.T) {
	assert.Equal(t, 10, NoShowBonus(100))
	assert.Equal(t, 9, NoShowBonus(99))
	assert.Equal(t, 1, NoShowBonus(10))
	assert.Equal(t, 0, NoShowBonus(9))
}

func TestSettleBookingRefunds(t *testing.T) {
	paid := func(status string, credits int) models.Booking {
		return models.Booking{Status: status, CreditsPaid: credits}
	}

	s := SettleBooking(paid(models.BookingCanceledByStudent, 40), false)
	assert.Equal(t, 40, s.RefundCredits)
	assert.Equal(t, 0, s.BonusCredits)
	assert.Equal(t, "40 credits refunded", s.Message)

	s = SettleBooking(paid(models.BookingCanceledByTutor, 40), false)
	assert.Equal(t, 40, s.RefundCredits)

	s = SettleBooking(paid(models.BookingNoShowByTutor, 100), false)
	assert.Equal(t, 110, s.RefundCredits)
	assert.Equal(t, 10, s.BonusCredits)
	assert.Equal(t, "110 credits refunded, including a 10 credit bonus", s.Message)

	s = SettleBooking(paid(models.BookingNoShowByTutor, 99), false)
	assert.Equal(t, 108, s.RefundCredits)
	assert.Equal(t, 9, s.BonusCredits)

	s = SettleBooking(paid(models.BookingExpired, 25), false)
	assert.Equal(t, 25, s.RefundCredits)
}

func TestSettleBookingNoRefund(t *testing.T) {
	for _, status := range []string{models.BookingConfirmed, models.BookingOngoing, models.BookingCompleted, models.BookingNoShowByStudent} {
		s := SettleBooking(models.Booking{Status: status, CreditsPaid: 40}, false)
		assert.Equal(t, 0, s.RefundCredits, status)
		assert.Equal(t, "40 credits paid", s.Message, status)
	}
}

func TestSettleBookingMissedPrecedence(t *testing.T) {
	// Missed sessions retain the credits even when the stored status would refund.
	b := models.Booking{Status: models.BookingNoShowByTutor, CreditsPaid: 40}
	s := SettleBooking(b, true)
	assert.Equal(t, 0, s.RefundCredits)
	assert.Equal(t, "40 credits retained by platform", s.Message)
}

func TestTrialBookingEndToEnd(t *testing.T) {
	// A trial slot from a 40-credit tutor costs 10 credits; a tutor no-show
	// refunds the price plus the floor(10%) bonus.
	price := SessionPrice(models.SessionTypeTrial, 40)
	assert.Equal(t, 10, price)

	b := models.Booking{Status: models.BookingNoShowByTutor, CreditsPaid: price}
	s := SettleBooking(b, false)
	assert.Equal(t, 11, s.RefundCredits)
	assert.Equal(t, 1, s.BonusCredits)
}

func TestTutorShare(t *testing.T) {
	assert.Equal(t, 32, TutorShare(models.SessionTypeStandard, 40))
	assert.Equal(t, 8, PlatformShare(models.SessionTypeStandard, 40))

	assert.Equal(t, 10, TutorShare(models.SessionTypeTrial, 10))
	assert.Equal(t, 0, PlatformShare(models.SessionTypeTrial, 10))
}
