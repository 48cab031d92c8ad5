package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	config "github.com/kiprotich-dev/lingua_connect/configs"
	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/notifications"
	"github.com/kiprotich-dev/lingua_connect/payments"
	"github.com/kiprotich-dev/lingua_connect/services"
)

type BuyCreditsRequest struct {
	Credits int `json:"credits" validate:"required,min=10,max=10000"`
}

// creditPriceUSD returns the per-credit price in dollars from config, with a
// sane default so a missing env var never sells credits for free.
func creditPriceUSD() float64 {
	price, err := strconv.ParseFloat(config.Config("CREDIT_PRICE_USD"), 64)
	if err != nil || price <= 0 {
		return 1.0
	}
	return price
}

// BuyCredits opens a hosted checkout session for a credit purchase and
// records a pending ledger entry keyed by the provider session ID.
func BuyCredits(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req BuyCreditsRequest
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

	amount := float64(req.Credits) * creditPriceUSD()
	amountCents := int64(amount * 100)

	session, err := payments.CreateCheckoutSession(
		amountCents,
		"usd",
		fmt.Sprintf("%d LinguaConnect credits", req.Credits),
		map[string]string{
			"user_id": user.ID.String(),
			"credits": strconv.Itoa(req.Credits),
		},
	)
	if err != nil {
		log.Printf("🔥 Failed to create checkout session for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to initiate payment"})
	}

	currency := "USD"
	txn := models.CreditTransaction{
		UserID:            user.ID,
		Type:              models.TxnPurchase,
		Credits:           req.Credits,
		Status:            "pending",
		Amount:            &amount,
		Currency:          &currency,
		ProviderSessionID: &session.ID,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record purchase"})
	}

	return c.JSON(fiber.Map{"checkout_url": session.URL, "session_id": session.ID})
}

type CheckoutWebhookPayload struct {
	SessionID string `json:"session_id" validate:"required"`
	Event     string `json:"event" validate:"required"`
}

// CheckoutWebhook settles a credit purchase. The session is re-fetched from
// the provider so a forged payload cannot credit an account.
func CheckoutWebhook(c *fiber.Ctx) error {
	var payload CheckoutWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.Event != "checkout.session.completed" {
		return c.SendStatus(fiber.StatusOK)
	}

	session, err := payments.GetCheckoutSession(payload.SessionID)
	if err != nil {
		log.Printf("🔥 Webhook verification failed for session %s: %v", payload.SessionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not verify payment session"})
	}
	if session.Status != "paid" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session is not paid"})
	}

	var txn models.CreditTransaction
	if err := database.DB.Where("provider_session_id = ?", session.ID).First(&txn).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown payment session"})
	}
	if txn.Status == "succeeded" {
		// Providers retry webhooks; the purchase is already settled.
		return c.SendStatus(fiber.StatusOK)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CreditTransaction{}).Where("id = ?", txn.ID).
			Update("status", "succeeded").Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", txn.UserID).
			Update("balance_credits", gorm.Expr("balance_credits + ?", txn.Credits)).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to settle purchase"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", txn.UserID).Error; err == nil {
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Credit Purchase Receipt",
			fmt.Sprintf("<h1>Thank you!</h1><p>%d credits have been added to your account. Your receipt is being prepared and will appear in your transaction history.</p>", txn.Credits),
		)
	}

	txn.Status = "succeeded"
	go services.GenerateCreditReceipt(txn)

	return c.SendStatus(fiber.StatusOK)
}
