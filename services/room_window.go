package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kiprotich-dev/lingua_connect/models"
)

type RoomVisibility int

const (
	RoomHidden RoomVisibility = iota
	RoomVisible
	RoomCountdown
)

// RoomState is the display gate for a booking's video room. Join authorization
// itself is enforced by the room-creation endpoint.
type RoomState struct {
	Visibility RoomVisibility `json:"visibility"`
	RoomName   string         `json:"room_name,omitempty"`
	Countdown  string         `json:"countdown,omitempty"`
}

// RoomWindow decides whether the video room name may be shown for a booking.
// The room opens five minutes before the start and closes at the end of the
// session; outside confirmed/ongoing nothing is shown.
func RoomWindow(status string, videoCallLink *string, start, end, now time.Time) RoomState {
	if status != models.BookingConfirmed && status != models.BookingOngoing {
		return RoomState{Visibility: RoomHidden}
	}
	opensAt := start.Add(-JoinGrace)
	if now.Before(opensAt) {
		return RoomState{Visibility: RoomCountdown, Countdown: countdownText(opensAt.Sub(now))}
	}
	if now.After(end) {
		return RoomState{Visibility: RoomHidden}
	}
	name := ""
	if videoCallLink != nil {
		name = RoomDisplayName(*videoCallLink)
	}
	return RoomState{Visibility: RoomVisible, RoomName: name}
}

func countdownText(d time.Duration) string {
	mins := int(math.Ceil(d.Minutes()))
	if mins < 60 {
		return fmt.Sprintf("in %d min", mins)
	}
	return fmt.Sprintf("in %dh %dm", mins/60, mins%60)
}

// RoomDisplayName strips the video provider URL down to the bare room name.
func RoomDisplayName(link string) string {
	trimmed := strings.TrimSuffix(link, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
