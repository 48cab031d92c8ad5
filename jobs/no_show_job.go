package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/notifications"
	"github.com/kiprotich-dev/lingua_connect/services"
)

// ReconcileNoShows sweeps confirmed bookings whose join window has closed and
// persists the no-show status the clients only derive. Refunds and tutor
// earnings follow the settlement rules.
func ReconcileNoShows() {
	log.Println("Running job: ReconcileNoShows...")

	now := time.Now()
	cutoff := now.Add(-services.JoinGrace)

	var stale []models.Booking
	err := database.DB.
		Preload("AvailabilitySlot").
		Preload("Student").
		Preload("Tutor").
		Joins("JOIN availability_slots on bookings.availability_slot_id = availability_slots.id").
		Where("bookings.status = ? AND availability_slots.start_time < ?", models.BookingConfirmed, cutoff).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error sweeping for no-shows: %v", err)
		return
	}

	reconciled := 0
	for _, booking := range stale {
		next := services.ReconcileNoShow(booking, booking.AvailabilitySlot.StartTime, now)
		if next == "" {
			continue
		}
		if err := settleNoShow(booking, next); err != nil {
			log.Printf("Error settling no-show for booking %s: %v", booking.ID, err)
			continue
		}
		reconciled++
	}

	if reconciled > 0 {
		log.Printf("Reconciled %d no-show booking(s).", reconciled)
	}
}

func settleNoShow(booking models.Booking, status string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		booking.Status = status
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		switch status {
		case models.BookingNoShowByTutor:
			settlement := services.SettleBooking(booking, false)
			if err := tx.Model(&models.User{}).Where("id = ?", booking.StudentID).
				Update("balance_credits", gorm.Expr("balance_credits + ?", settlement.RefundCredits)).Error; err != nil {
				return err
			}
			refund := models.CreditTransaction{
				UserID:    booking.StudentID,
				BookingID: &booking.ID,
				Type:      models.TxnRefund,
				Credits:   booking.CreditsPaid,
			}
			if err := tx.Create(&refund).Error; err != nil {
				return err
			}
			if settlement.BonusCredits > 0 {
				bonus := models.CreditTransaction{
					UserID:    booking.StudentID,
					BookingID: &booking.ID,
					Type:      models.TxnBonus,
					Credits:   settlement.BonusCredits,
				}
				if err := tx.Create(&bonus).Error; err != nil {
					return err
				}
			}
			go notifications.SendEmail(booking.Student.FullName, booking.Student.Email,
				"Your Tutor Did Not Join",
				fmt.Sprintf("<h1>Session Refunded</h1><p>Your tutor did not join the session. %s.</p>", settlement.Message))

		case models.BookingNoShowByStudent:
			// The tutor is paid only if they actually showed up.
			if booking.TutorJoinedWithin5Min {
				share := services.TutorShare(booking.AvailabilitySlot.SessionType, booking.CreditsPaid)
				if err := tx.Model(&models.TutorDetails{}).Where("user_id = ?", booking.TutorID).
					Update("earned_credits", gorm.Expr("earned_credits + ?", share)).Error; err != nil {
					return err
				}
				earning := models.CreditTransaction{
					UserID:    booking.TutorID,
					BookingID: &booking.ID,
					Type:      models.TxnEarning,
					Credits:   share,
				}
				if err := tx.Create(&earning).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
