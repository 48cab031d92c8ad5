package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/notifications"
	"github.com/kiprotich-dev/lingua_connect/services"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pending []models.TutorDetails
	if err := database.DB.Preload("User").Where("status = ?", "pending").Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pending)
}

func ManageApplication(c *fiber.Ctx) error {
	type MgtRequest struct {
		Status string `json:"status" validate:"required,oneof=verified rejected"`
	}

	var req MgtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorUserID := c.Params("tutorId")

	var application models.TutorDetails
	if err := database.DB.Where("user_id = ?", tutorUserID).First(&application).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var user models.User
	if err := database.DB.Where("id = ?", tutorUserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = req.Status
		if err := tx.Save(&application).Error; err != nil {
			return err
		}
		if req.Status == "verified" {
			user.Role = "tutor"
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}

	switch req.Status {
	case "verified":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Tutor Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application to become a tutor has been approved. You can now publish availability and start teaching.</p>",
		)
	case "rejected":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Update on Your Tutor Application",
			"<h1>Application Update</h1><p>We regret to inform you that after careful review, your tutor application was not approved at this time.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Application status updated successfully"})
}

func ListLanguageChangeRequests(c *fiber.Ctx) error {
	var requests []models.LanguageChangeRequest
	query := database.DB.Preload("Tutor")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}

// ApproveLanguageChangeRequest approves the request and switches the tutor's
// teaching language. Already-published unbooked slots keep their language, so
// the tutor is expected to republish them.
func ApproveLanguageChangeRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	var request models.LanguageChangeRequest
	if err := database.DB.Preload("Tutor").First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Language change request not found"})
	}
	if request.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This request has already been reviewed"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		request.Status = "approved"
		request.ReviewedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		return tx.Model(&models.TutorDetails{}).Where("user_id = ?", request.TutorID).
			Update("language_to_teach", request.RequestedLanguage).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve language change request"})
	}

	go notifications.SendEmail(
		request.Tutor.FullName,
		request.Tutor.Email,
		"Language Change Request Approved",
		fmt.Sprintf("<h1>Request Approved</h1><p>You now teach %s on LinguaConnect.</p>", request.RequestedLanguage),
	)

	return c.JSON(fiber.Map{"message": "Language change request approved"})
}

// DenyLanguageChangeRequest removes the request, which is how the admin
// console denies it.
func DenyLanguageChangeRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	var request models.LanguageChangeRequest
	if err := database.DB.Preload("Tutor").First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Language change request not found"})
	}
	if request.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This request has already been reviewed"})
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deny language change request"})
	}

	go notifications.SendEmail(
		request.Tutor.FullName,
		request.Tutor.Email,
		"Language Change Request Denied",
		"<h1>Request Denied</h1><p>Your request to change your teaching language was not approved. You can contact support for details.</p>",
	)

	return c.JSON(fiber.Map{"message": "Language change request denied"})
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	query := database.DB.Preload("TutorDetails")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

// ToggleUserStatus activates or deactivates an account. Deactivating a tutor
// force-expires their future confirmed bookings with a full refund.
func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if user.IsActive || user.Role != "tutor" {
			return nil
		}
		return expireFutureBookings(tx, user.ID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s successfully", state)})
}

func expireFutureBookings(tx *gorm.DB, tutorID uuid.UUID) error {
	var affected []models.Booking
	if err := tx.
		Joins("JOIN availability_slots on bookings.availability_slot_id = availability_slots.id").
		Where("bookings.tutor_id = ? AND bookings.status = ? AND availability_slots.start_time > ?",
			tutorID, models.BookingConfirmed, time.Now()).
		Find(&affected).Error; err != nil {
		return err
	}

	for _, booking := range affected {
		booking.Status = models.BookingExpired
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		settlement := services.SettleBooking(booking, false)
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
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Role == "admin" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Admin accounts cannot be deleted"})
	}

	var active int64
	database.DB.Model(&models.Booking{}).
		Where("(student_id = ? OR tutor_id = ?) AND status IN ?", userID, userID,
			[]string{models.BookingConfirmed, models.BookingOngoing}).
		Count(&active)
	if active > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User still has active bookings"})
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func ListPayoutRequests(c *fiber.Ctx) error {
	var requests []models.PayoutRequest
	database.DB.Preload("Tutor.User").Where("status = ?", "pending").Find(&requests)
	return c.JSON(requests)
}

func ProcessPayoutRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	type ProcessRequest struct {
		Decision   string `json:"decision" validate:"required,oneof=complete reject"`
		AdminNotes string `json:"admin_notes"`
	}
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payout models.PayoutRequest
	if err := database.DB.Preload("Tutor.User").First(&payout, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}
	if payout.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This payout request has already been processed"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		payout.Status = req.Decision
		payout.AdminNotes = &req.AdminNotes
		payout.ProcessedAt = &now
		if err := tx.Save(&payout).Error; err != nil {
			return err
		}

		if req.Decision == "reject" {
			return tx.Model(&models.TutorDetails{}).Where("user_id = ?", payout.TutorID).
				Update("earned_credits", gorm.Expr("earned_credits + ?", payout.Credits)).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payout request"})
	}

	tutor := payout.Tutor.User
	if req.Decision == "complete" {
		go notifications.SendEmail(
			tutor.FullName,
			tutor.Email,
			"Your Payout Has Been Processed",
			fmt.Sprintf("<h1>Payout Processed</h1><p>Hello %s,</p><p>Your payout request for %d credits has been processed and sent by our team.</p>", tutor.FullName, payout.Credits),
		)
	}

	return c.JSON(fiber.Map{"message": "Payout request processed"})
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	database.DB.
		Preload("Student").
		Preload("Tutor").
		Preload("AvailabilitySlot").
		Order("created_at desc").
		Limit(200).
		Find(&bookings)
	return c.JSON(bookings)
}

func AdminGetTransactions(c *fiber.Ctx) error {
	var transactions []models.CreditTransaction
	query := database.DB.Order("created_at desc").Limit(200)
	if txnType := c.Query("type"); txnType != "" {
		query = query.Where("type = ?", txnType)
	}
	query.Find(&transactions)
	return c.JSON(transactions)
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var totalStudents, totalTutors, totalBookings, completedBookings int64
	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&totalStudents)
	database.DB.Model(&models.User{}).Where("role = ?", "tutor").Count(&totalTutors)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCompleted).Count(&completedBookings)

	var creditsSold int64
	database.DB.Model(&models.CreditTransaction{}).
		Where("type = ? AND status = ?", models.TxnPurchase, "succeeded").
		Select("COALESCE(SUM(credits), 0)").Row().Scan(&creditsSold)

	var pendingApplications, pendingLanguageChanges, openReports int64
	database.DB.Model(&models.TutorDetails{}).Where("status = ?", "pending").Count(&pendingApplications)
	database.DB.Model(&models.LanguageChangeRequest{}).Where("status = ?", "pending").Count(&pendingLanguageChanges)
	database.DB.Model(&models.Report{}).Where("status = ?", "open").Count(&openReports)

	return c.JSON(fiber.Map{
		"total_students":           totalStudents,
		"total_tutors":             totalTutors,
		"total_bookings":           totalBookings,
		"completed_bookings":       completedBookings,
		"credits_sold":             creditsSold,
		"pending_applications":     pendingApplications,
		"pending_language_changes": pendingLanguageChanges,
		"open_reports":             openReports,
	})
}

var errAlreadyResolved = errors.New("report already resolved")

func ResolveReport(c *fiber.Ctx) error {
	reportID := c.Params("reportId")

	type ResolveRequest struct {
		Status     string `json:"status" validate:"required,oneof=resolved dismissed"`
		AdminNotes string `json:"admin_notes"`
	}
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var report models.Report
	if err := database.DB.First(&report, "id = ?", reportID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	if report.Status != "open" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errAlreadyResolved.Error()})
	}

	now := time.Now()
	report.Status = req.Status
	report.AdminNotes = &req.AdminNotes
	report.ResolvedAt = &now
	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve report"})
	}

	return c.JSON(report)
}
