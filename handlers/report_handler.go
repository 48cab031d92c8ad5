package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
)

type CreateReportRequest struct {
	ReportedUserID string `json:"reported_user_id" validate:"required,uuid"`
	BookingID      string `json:"booking_id" validate:"omitempty,uuid"`
	Reason         string `json:"reason" validate:"required,min=3,max=100"`
	Details        string `json:"details" validate:"max=2000"`
}

func CreateReport(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	reporterID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reportedID, _ := uuid.Parse(req.ReportedUserID)
	if reportedID == reporterID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot report yourself"})
	}

	var reported models.User
	if err := database.DB.First(&reported, "id = ?", reportedID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reported user not found"})
	}

	report := models.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedID,
		Reason:         req.Reason,
		Details:        req.Details,
	}

	if req.BookingID != "" {
		bookingID, _ := uuid.Parse(req.BookingID)
		var booking models.Booking
		if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		if booking.StudentID != reporterID && booking.TutorID != reporterID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
		}
		report.BookingID = &bookingID
	}

	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit report"})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func GetMyReports(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	reporterID := claims["user_id"].(string)

	var reports []models.Report
	if err := database.DB.
		Where("reporter_id = ?", reporterID).
		Order("created_at desc").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reports)
}

func GetReport(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var report models.Report
	if err := database.DB.Preload("Reporter").Preload("ReportedUser").
		First(&report, "id = ?", c.Params("reportId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	if role != "admin" && report.ReporterID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your report"})
	}
	return c.JSON(report)
}

func ListReports(c *fiber.Ctx) error {
	var reports []models.Report
	query := database.DB.Preload("Reporter").Preload("ReportedUser")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(reports)
}
