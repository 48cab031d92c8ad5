package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/notifications"
	"github.com/kiprotich-dev/lingua_connect/services"
)

type CreateBookingRequest struct {
	AvailabilitySlotID string `json:"availability_slot_id" validate:"required,uuid"`
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	slotID, _ := uuid.Parse(req.AvailabilitySlotID)

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.AvailabilitySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Bookings").
			First(&slot, "id = ?", slotID).Error; err != nil {
			return errors.New("availability slot not found")
		}
		if slot.TutorID == studentID {
			return errors.New("you cannot book your own slot")
		}
		if slot.IsBooked {
			return errors.New("this slot is no longer available")
		}
		if !services.SlotOpenForBooking(slot, time.Now()) {
			return errors.New("this slot is no longer open for booking")
		}

		var student models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&student, "id = ?", studentID).Error; err != nil {
			return errors.New("student not found")
		}

		price := slot.CreditsRequired
		if student.BalanceCredits < price {
			return errors.New("insufficient credit balance to book this session")
		}

		student.BalanceCredits -= price
		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		slot.IsBooked = true
		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		booking = models.Booking{
			AvailabilitySlotID: slot.ID,
			StudentID:          studentID,
			TutorID:            slot.TutorID,
			Status:             models.BookingConfirmed,
			CreditsPaid:        price,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		charge := models.CreditTransaction{
			UserID:    studentID,
			BookingID: &booking.ID,
			Type:      models.TxnBooking,
			Credits:   -price,
		}
		return tx.Create(&charge).Error
	})
	if err != nil {
		status := fiber.StatusBadRequest
		if err.Error() == "this slot is no longer available" || err.Error() == "this slot is no longer open for booking" {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	go func() {
		var confirmed models.Booking
		if err := database.DB.Preload("Student").Preload("Tutor").Preload("AvailabilitySlot").
			First(&confirmed, "id = ?", booking.ID).Error; err != nil {
			return
		}
		when := confirmed.AvailabilitySlot.StartTime.Format(time.RFC1123)
		notifications.SendEmail(confirmed.Student.FullName, confirmed.Student.Email,
			"Your Booking is Confirmed!",
			fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your session on %s has been booked with your credit balance.</p>", when))
		notifications.SendEmail(confirmed.Tutor.FullName, confirmed.Tutor.Email,
			"You Have a New Booking!",
			fmt.Sprintf("<h1>New Booking</h1><p>A student has booked your session on %s.</p>", when))
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking confirmed successfully.",
		"booking": booking,
	})
}

func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)
	bookingID := c.Params("bookingId")

	var settlement services.Settlement
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("AvailabilitySlot").
			First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}

		canceledStatus := models.BookingCanceledByStudent
		if role == "tutor" && booking.TutorID == callerID {
			canceledStatus = models.BookingCanceledByTutor
		} else if booking.StudentID != callerID {
			return errors.New("this is not your booking")
		}

		slot := booking.AvailabilitySlot
		if err := services.CanCancel(booking, slot.SessionType, slot.StartTime, time.Now()); err != nil {
			return err
		}

		booking.Status = canceledStatus
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		// Reopen the slot; the availability filter decides whether it can
		// still be offered given the remaining lead time.
		if err := tx.Model(&models.AvailabilitySlot{}).Where("id = ?", slot.ID).
			Update("is_booked", false).Error; err != nil {
			return err
		}

		settlement = services.SettleBooking(booking, false)
		if settlement.RefundCredits > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", booking.StudentID).
				Update("balance_credits", gorm.Expr("balance_credits + ?", settlement.RefundCredits)).Error; err != nil {
				return err
			}
			refund := models.CreditTransaction{
				UserID:    booking.StudentID,
				BookingID: &booking.ID,
				Type:      models.TxnRefund,
				Credits:   settlement.RefundCredits,
			}
			if err := tx.Create(&refund).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var windowErr *services.CancelWindowError
		if errors.As(err, &windowErr) || errors.Is(err, services.ErrNotConfirmed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if err.Error() == "booking not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if err.Error() == "this is not your booking" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{
		"message":    "Booking canceled successfully.",
		"settlement": settlement,
	})
}

// BookingView decorates a booking with everything the session list renders:
// the status badge, the missed flag, the settlement message and the room gate.
type BookingView struct {
	models.Booking
	StatusBadge services.StatusBadge `json:"status_badge"`
	IsMissed    bool                 `json:"is_missed"`
	Settlement  services.Settlement  `json:"settlement"`
	Room        services.RoomState   `json:"room"`
}

func decorateBookings(bookings []models.Booking, viewpoint services.Viewpoint, now time.Time) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		slot := b.AvailabilitySlot
		missed := services.IsMissed(b, slot.StartTime, now)
		views = append(views, BookingView{
			Booking:     b,
			StatusBadge: services.ClassifyBooking(b, slot.StartTime, viewpoint, now),
			IsMissed:    missed,
			Settlement:  services.SettleBooking(b, missed),
			Room:        services.RoomWindow(b.Status, b.VideoCallLink, slot.StartTime, slot.EndTime, now),
		})
	}
	return views
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var bookings []models.Booking
	database.DB.
		Preload("Tutor").
		Preload("AvailabilitySlot").
		Where("student_id = ?", studentID).
		Order("availability_slots.start_time desc").
		Joins("JOIN availability_slots on bookings.availability_slot_id = availability_slots.id").
		Find(&bookings)

	return c.JSON(decorateBookings(bookings, services.StudentView, time.Now()))
}

func GetMyTutorBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var bookings []models.Booking
	database.DB.
		Preload("Student").
		Preload("AvailabilitySlot").
		Where("tutor_id = ?", tutorID).
		Order("availability_slots.start_time desc").
		Joins("JOIN availability_slots on bookings.availability_slot_id = availability_slots.id").
		Find(&bookings)

	return c.JSON(decorateBookings(bookings, services.TutorView, time.Now()))
}

// CompleteBooking is the summary-page flow: once the session has ended, either
// party confirms it, which settles the tutor's share.
func CompleteBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.
		Preload("AvailabilitySlot").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.StudentID != callerID && booking.TutorID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}
	if booking.Status != models.BookingOngoing {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only ongoing sessions can be marked as completed"})
	}
	if booking.AvailabilitySlot.EndTime.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot complete a session before it has ended"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		booking.Status = models.BookingCompleted
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

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
		return tx.Create(&earning).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete booking"})
	}

	return c.JSON(fiber.Map{"message": "Session marked as completed and tutor earnings have been credited."})
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newReview models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.StudentID != studentID {
			return errors.New("you are not the student for this booking")
		}
		if booking.Status != models.BookingCompleted {
			return errors.New("reviews can only be submitted for completed sessions")
		}

		var existingReview models.Review
		if err := tx.Where("booking_id = ?", bookingID).First(&existingReview).Error; err == nil {
			return errors.New("a review for this booking has already been submitted")
		}

		newReview = models.Review{
			BookingID: booking.ID,
			StudentID: studentID,
			TutorID:   booking.TutorID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.Review{}).Where("tutor_id = ?", booking.TutorID).Select("avg(rating) as avg").Scan(&result)

		return tx.Model(&models.TutorDetails{}).Where("user_id = ?", booking.TutorID).
			Update("avg_rating", result.Avg).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}
