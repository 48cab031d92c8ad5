package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/kiprotich-dev/lingua_connect/configs"
	"github.com/kiprotich-dev/lingua_connect/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutorDetails{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.SpokenLanguage{},
		&models.PlatformLanguage{},
		&models.Country{},
		&models.LanguageChangeRequest{},
		&models.CreditTransaction{},
		&models.PayoutRequest{},
		&models.Review{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName:   config.Config("ADMIN_FULL_NAME"),
		Email:      adminEmail,
		Password:   string(hashedPassword),
		Role:       "admin",
		IsVerified: true,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedCatalogs backfills the platform-language catalog so tutors can apply on a
// fresh database. Countries and spoken languages are managed by admins.
func SeedCatalogs() {
	var count int64
	if err := DB.Model(&models.PlatformLanguage{}).Count(&count).Error; err != nil {
		log.Printf("Failed to check platform languages: %v", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []string{"English", "Spanish", "French", "German", "Mandarin", "Swahili", "Arabic", "Portuguese"}
	for _, name := range defaults {
		if err := DB.Create(&models.PlatformLanguage{Name: name, IsActive: true}).Error; err != nil {
			log.Printf("Failed to seed platform language %s: %v", name, err)
		}
	}
	log.Println("✅ Platform language catalog seeded")
}
