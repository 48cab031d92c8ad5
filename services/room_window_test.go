package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiprotich-dev/lingua_connect/models"
)

func TestRoomWindowVisibility(t *testing.T) {
	now := time.Now()
	link := "https://lingua.daily.co/session-abc123"

	// Four minutes before the start the room is already open.
	state := RoomWindow(models.BookingConfirmed, &link, now.Add(4*time.Minute), now.Add(64*time.Minute), now)
	assert.Equal(t, RoomVisible, state.Visibility)
	assert.Equal(t, "session-abc123", state.RoomName)

	// Six minutes before the start the room opens in one minute.
	state = RoomWindow(models.BookingConfirmed, &link, now.Add(6*time.Minute), now.Add(66*time.Minute), now)
	assert.Equal(t, RoomCountdown, state.Visibility)
	assert.Equal(t, "in 1 min", state.Countdown)

	// Mid-session the room stays visible for ongoing bookings.
	state = RoomWindow(models.BookingOngoing, &link, now.Add(-10*time.Minute), now.Add(50*time.Minute), now)
	assert.Equal(t, RoomVisible, state.Visibility)

	// After the end nothing is shown.
	state = RoomWindow(models.BookingOngoing, &link, now.Add(-2*time.Hour), now.Add(-time.Hour), now)
	assert.Equal(t, RoomHidden, state.Visibility)
}

func TestRoomWindowStatusGate(t *testing.T) {
	now := time.Now()
	link := "https://lingua.daily.co/session-abc123"

	for _, status := range []string{
		models.BookingCompleted,
		models.BookingCanceledByStudent,
		models.BookingCanceledByTutor,
		models.BookingNoShowByTutor,
		models.BookingExpired,
	} {
		state := RoomWindow(status, &link, now.Add(time.Minute), now.Add(time.Hour), now)
		assert.Equal(t, RoomHidden, state.Visibility, status)
	}
}

func TestRoomWindowCountdownFormat(t *testing.T) {
	now := time.Now()
	link := "https://lingua.daily.co/room"

	state := RoomWindow(models.BookingConfirmed, &link, now.Add(35*time.Minute), now.Add(95*time.Minute), now)
	assert.Equal(t, "in 30 min", state.Countdown)

	state = RoomWindow(models.BookingConfirmed, &link, now.Add(2*time.Hour+35*time.Minute), now.Add(4*time.Hour), now)
	assert.Equal(t, "in 2h 30m", state.Countdown)
}

func TestRoomWindowNoLinkYet(t *testing.T) {
	now := time.Now()

	// The window may open before the room has been created.
	state := RoomWindow(models.BookingConfirmed, nil, now.Add(2*time.Minute), now.Add(time.Hour), now)
	assert.Equal(t, RoomVisible, state.Visibility)
	assert.Equal(t, "", state.RoomName)
}

func TestRoomDisplayName(t *testing.T) {
	assert.Equal(t, "session-abc123", RoomDisplayName("https://lingua.daily.co/session-abc123"))
	assert.Equal(t, "session-abc123", RoomDisplayName("https://lingua.daily.co/session-abc123/"))
	assert.Equal(t, "bare-room", RoomDisplayName("bare-room"))
}
