package handlers

import (
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/kiprotich-dev/lingua_connect/database"
	"github.com/kiprotich-dev/lingua_connect/models"
	"github.com/kiprotich-dev/lingua_connect/services"
	"github.com/kiprotich-dev/lingua_connect/video"
	hub "github.com/kiprotich-dev/lingua_connect/websocket"
)

type CreateRoomRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// CreateDailyRoom is the join flow: it authorizes the caller against the room
// window, lazily creates the video room, records the join timestamp and the
// within-5-minutes flag, and moves the booking to ongoing.
func CreateDailyRoom(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Preload("AvailabilitySlot").First(&booking, "id = ?", req.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.StudentID != callerID && booking.TutorID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	slot := booking.AvailabilitySlot
	now := time.Now()
	state := services.RoomWindow(booking.Status, booking.VideoCallLink, slot.StartTime, slot.EndTime, now)
	switch state.Visibility {
	case services.RoomCountdown:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "The session room is not open yet",
			"countdown": state.Countdown,
		})
	case services.RoomHidden:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The session room is no longer available"})
	}

	if booking.VideoCallLink == nil {
		room, err := video.CreateRoom(booking.ID.String(), slot.EndTime)
		if err != nil {
			log.Printf("🔥 Failed to create video room for booking %s: %v", booking.ID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to connect to session_service"})
		}
		booking.VideoCallLink = &room.URL
	}

	onTime := !now.After(slot.StartTime.Add(services.JoinGrace))
	role := "student"
	if callerID == booking.TutorID {
		role = "tutor"
		if booking.TutorJoinedAt == nil {
			booking.TutorJoinedAt = &now
			booking.TutorJoinedWithin5Min = onTime
		}
	} else {
		if booking.StudentJoinedAt == nil {
			booking.StudentJoinedAt = &now
			booking.StudentJoinedWithin5Min = onTime
		}
	}

	if booking.Status == models.BookingConfirmed {
		booking.Status = models.BookingOngoing
	}
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record session join"})
	}

	hub.Notify(&hub.PresenceEvent{
		BookingID: booking.ID,
		UserID:    callerID,
		Role:      role,
		Event:     "joined",
	})

	return c.JSON(fiber.Map{
		"room_url":  *booking.VideoCallLink,
		"room_name": services.RoomDisplayName(*booking.VideoCallLink),
		"booking":   booking,
	})
}

// SessionPresenceUpgrade gates the websocket upgrade to participants of the
// booking before SessionPresence takes over the connection.
func SessionPresenceUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.StudentID != callerID && booking.TutorID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	c.Locals("booking_id", bookingID)
	c.Locals("caller_id", callerID)
	return c.Next()
}

// SessionPresence keeps a participant connected to the session's presence
// channel until they disconnect.
var SessionPresence = websocket.New(func(conn *websocket.Conn) {
	bookingID := conn.Locals("booking_id").(uuid.UUID)
	callerID := conn.Locals("caller_id").(uuid.UUID)

	client := &hub.Client{BookingID: bookingID, UserID: callerID, Conn: conn}
	hub.Register <- client
	defer func() {
		hub.Unregister <- client
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
})
