package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/services"
)

type TutorApplicationRequest struct {
	Headline        string  `json:"headline" validate:"required"`
	Bio             string  `json:"bio" validate:"required"`
	LanguageToTeach string  `json:"language_to_teach" validate:"required"`
	RequiredCredits int     `json:"required_credits" validate:"required,gt=0"`
	IntroVideoURL   *string `json:"intro_video_url"`
	CertificateURL  *string `json:"certificate_url"`
}

func ApplyToBeTutor(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var language models.PlatformLanguage
	if err := database.DB.Where("name = ? AND is_active = ?", req.LanguageToTeach, true).First(&language).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Requested teaching language is not offered on the platform"})
	}

	var existing models.TutorDetails
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	application := models.TutorDetails{
		UserID:          userID,
		Headline:        &req.Headline,
		Bio:             &req.Bio,
		LanguageToTeach: req.LanguageToTeach,
		RequiredCredits: req.RequiredCredits,
		IntroVideoURL:   req.IntroVideoURL,
		CertificateURL:  req.CertificateURL,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

func ListVerifiedTutors(c *fiber.Ctx) error {
	var tutors []models.TutorDetails
	query := database.DB.Preload("User").Where("status = ?", "verified")
	if language := c.Query("language"); language != "" {
		query = query.Where("language_to_teach = ?", language)
	}
	if err := query.Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(tutors)
}

func GetTutorProfile(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var tutor models.TutorDetails
	if err := database.DB.Preload("User").Where("user_id = ? AND status = ?", tutorID, "verified").First(&tutor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	var reviews []models.Review
	database.DB.Preload("Student").Where("tutor_id = ?", tutorID).Order("created_at desc").Limit(20).Find(&reviews)

	return c.JSON(fiber.Map{"tutor": tutor, "reviews": reviews})
}

type CreateAvailabilityRequest struct {
	StartTime   string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime     string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	SessionType string `json:"session_type" validate:"required,oneof=trial standard"`
}

func CreateAvailabilitySlot(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.TutorDetails
	if err := database.DB.Where("user_id = ? AND status = ?", tutorID, "verified").First(&tutor).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only verified tutors can publish availability"})
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	if !startTime.Before(endTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be before end time"})
	}
	if startTime.Before(time.Now().Add(services.BookingLeadTime)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Slots must start at least 3 hours from now"})
	}

	newSlot := models.AvailabilitySlot{
		TutorID:         tutorID,
		SessionType:     req.SessionType,
		StartTime:       startTime,
		EndTime:         endTime,
		CreditsRequired: services.SessionPrice(req.SessionType, tutor.RequiredCredits),
		LanguageToTeach: tutor.LanguageToTeach,
	}
	if err := database.DB.Create(&newSlot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability slot"})
	}

	return c.Status(fiber.StatusCreated).JSON(newSlot)
}

func GetMyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var slots []models.AvailabilitySlot
	database.DB.Preload("Bookings").Where("tutor_id = ?", tutorID).Order("start_time asc").Find(&slots)

	return c.JSON(slots)
}

// GetTutorAvailability is the student-facing listing: only slots that pass the
// availability filter, annotated with whether the caller already holds one.
func GetTutorAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	var slots []models.AvailabilitySlot
	database.DB.Preload("Bookings").
		Where("tutor_id = ?", tutorID).
		Order("start_time asc").
		Find(&slots)

	return c.JSON(services.FilterOpenSlots(slots, tutorID, studentID, time.Now()))
}

type UpdateAvailabilityRequest struct {
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	SessionType *string `json:"session_type" validate:"omitempty,oneof=trial standard"`
}

func UpdateAvailabilitySlot(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))
	slotID := c.Params("slotId")

	var req UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var slot models.AvailabilitySlot
	if err := database.DB.Preload("Bookings").First(&slot, "id = ?", slotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
	}
	if slot.TutorID != tutorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your slot"})
	}
	if slot.IsBooked {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booked slots cannot be edited; cancel the booking first"})
	}

	if req.StartTime != nil {
		slot.StartTime, _ = time.Parse(time.RFC3339, *req.StartTime)
	}
	if req.EndTime != nil {
		slot.EndTime, _ = time.Parse(time.RFC3339, *req.EndTime)
	}
	if req.SessionType != nil && *req.SessionType != slot.SessionType {
		var tutor models.TutorDetails
		if err := database.DB.Where("user_id = ?", tutorID).First(&tutor).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Tutor profile not found"})
		}
		slot.SessionType = *req.SessionType
		slot.CreditsRequired = services.SessionPrice(slot.SessionType, tutor.RequiredCredits)
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be before end time"})
	}

	if err := database.DB.Save(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability slot"})
	}
	return c.JSON(slot)
}

// DeleteAvailabilitySlot hard-deletes a slot that no booking still claims.
// Slots with a live booking must go through cancellation instead.
func DeleteAvailabilitySlot(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))
	slotID := c.Params("slotId")

	var slot models.AvailabilitySlot
	if err := database.DB.Preload("Bookings").First(&slot, "id = ?", slotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
	}
	if slot.TutorID != tutorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your slot"})
	}
	if !services.SlotDeletable(slot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This slot has an active booking; cancel it instead of deleting the slot"})
	}

	if err := database.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete availability slot"})
	}
	return c.JSON(fiber.Map{"message": "Availability slot deleted"})
}

type LanguageChangeRequestBody struct {
	RequestedLanguage string  `json:"requested_language" validate:"required"`
	CertificateURL    *string `json:"certificate_url"`
}

func SubmitLanguageChangeRequest(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req LanguageChangeRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.TutorDetails
	if err := database.DB.Where("user_id = ?", tutorID).First(&tutor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}
	if tutor.LanguageToTeach == req.RequestedLanguage {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You already teach this language"})
	}

	var language models.PlatformLanguage
	if err := database.DB.Where("name = ? AND is_active = ?", req.RequestedLanguage, true).First(&language).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Requested language is not offered on the platform"})
	}

	var pending models.LanguageChangeRequest
	if err := database.DB.Where("tutor_id = ? AND status = ?", tutorID, "pending").First(&pending).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a pending language change request"})
	}

	request := models.LanguageChangeRequest{
		TutorID:           tutorID,
		CurrentLanguage:   tutor.LanguageToTeach,
		RequestedLanguage: req.RequestedLanguage,
		CertificateURL:    req.CertificateURL,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit language change request"})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func GetMyLanguageChangeRequests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var requests []models.LanguageChangeRequest
	database.DB.Where("tutor_id = ?", tutorID).Order("created_at desc").Find(&requests)
	return c.JSON(requests)
}

func GetMyEarnings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var tutor models.TutorDetails
	if err := database.DB.Where("user_id = ?", tutorID).First(&tutor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var history []models.CreditTransaction
	database.DB.Where("user_id = ? AND type IN ?", tutorID, []string{models.TxnEarning, models.TxnPayout}).
		Order("created_at desc").Find(&history)

	return c.JSON(fiber.Map{
		"earned_credits": tutor.EarnedCredits,
		"history":        history,
	})
}

type PayoutRequestBody struct {
	Credits int `json:"credits" validate:"required,gt=0"`
}

func RequestPayout(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req PayoutRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var tutor models.TutorDetails
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tutor, "user_id = ?", tutorID).Error; err != nil {
			return errors.New("tutor profile not found")
		}
		if tutor.EarnedCredits < req.Credits {
			return errors.New("insufficient earned credits for this payout request")
		}

		tutor.EarnedCredits -= req.Credits
		if err := tx.Save(&tutor).Error; err != nil {
			return err
		}

		payout := models.PayoutRequest{
			TutorID:     tutorID,
			Credits:     req.Credits,
			Status:      "pending",
			RequestedAt: time.Now(),
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}

		txn := models.CreditTransaction{
			UserID:  tutorID,
			Type:    models.TxnPayout,
			Credits: -req.Credits,
			Status:  "pending",
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Payout request submitted successfully."})
}

func GetMyPayoutRequests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var requests []models.PayoutRequest
	database.DB.Where("tutor_id = ?", tutorID).Order("requested_at desc").Find(&requests)
	return c.JSON(requests)
}
