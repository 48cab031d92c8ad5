package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
)

func GetMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.
		Preload("Country").
		Preload("LanguagesSpoken").
		Preload("TutorDetails").
		First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

type UpdateProfileRequest struct {
	FullName          *string  `json:"full_name" validate:"omitempty,min=3"`
	CountryID         *string  `json:"country_id" validate:"omitempty,uuid"`
	TimeZone          *string  `json:"time_zone"`
	About             *string  `json:"about"`
	ProfilePictureURL *string  `json:"profile_picture_url" validate:"omitempty,url"`
	LanguagesSpoken   []string `json:"languages_spoken" validate:"omitempty,dive,uuid"`
}

func UpdateMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.TimeZone != nil {
		user.TimeZone = req.TimeZone
	}
	if req.About != nil {
		user.About = req.About
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.CountryID != nil {
		countryID, _ := uuid.Parse(*req.CountryID)
		var country models.Country
		if err := database.DB.First(&country, "id = ?", countryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown country"})
		}
		user.CountryID = &countryID
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if req.LanguagesSpoken == nil {
			return nil
		}
		var languages []*models.SpokenLanguage
		if len(req.LanguagesSpoken) > 0 {
			if err := tx.Where("id IN ?", req.LanguagesSpoken).Find(&languages).Error; err != nil {
				return err
			}
		}
		return tx.Model(&user).Association("LanguagesSpoken").Replace(languages)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	database.DB.
		Preload("Country").
		Preload("LanguagesSpoken").
		Preload("TutorDetails").
		First(&user, "id = ?", userID)
	return c.JSON(user)
}

func GetMyCreditTransactions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var transactions []models.CreditTransaction
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(transactions)
}
