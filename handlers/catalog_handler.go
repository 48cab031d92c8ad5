package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
)

func GetCountries(c *fiber.Ctx) error {
	var countries []models.Country
	if err := database.DB.Order("name asc").Find(&countries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(countries)
}

func GetSpokenLanguages(c *fiber.Ctx) error {
	var languages []models.SpokenLanguage
	if err := database.DB.Order("name asc").Find(&languages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(languages)
}

func GetPlatformLanguages(c *fiber.Ctx) error {
	var languages []models.PlatformLanguage
	if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&languages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(languages)
}

type CreateCatalogEntryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Code string `json:"code" validate:"omitempty,len=2"`
}

func CreateCountry(c *fiber.Ctx) error {
	var req CreateCatalogEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Country code is required"})
	}

	country := models.Country{Name: req.Name, Code: req.Code}
	if err := database.DB.Create(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Country already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create country"})
	}
	return c.Status(fiber.StatusCreated).JSON(country)
}

func CreateSpokenLanguage(c *fiber.Ctx) error {
	var req CreateCatalogEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	language := models.SpokenLanguage{Name: req.Name}
	if err := database.DB.Create(&language).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Language already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create language"})
	}
	return c.Status(fiber.StatusCreated).JSON(language)
}

func CreatePlatformLanguage(c *fiber.Ctx) error {
	var req CreateCatalogEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	language := models.PlatformLanguage{Name: req.Name, IsActive: true}
	if err := database.DB.Create(&language).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Language already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create language"})
	}
	return c.Status(fiber.StatusCreated).JSON(language)
}

// TogglePlatformLanguage retires or reinstates a teaching language without
// breaking existing tutors who already teach it.
func TogglePlatformLanguage(c *fiber.Ctx) error {
	languageID := c.Params("languageId")

	var language models.PlatformLanguage
	if err := database.DB.First(&language, "id = ?", languageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Language not found"})
	}

	language.IsActive = !language.IsActive
	if err := database.DB.Save(&language).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update language"})
	}
	return c.JSON(language)
}
