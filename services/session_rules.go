package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kiprotich-dev/lingua_connect/models"
)

const (
	// BookingLeadTime hides slots once the session is too close to start.
	BookingLeadTime = 3 * time.Hour

	// JoinGrace is how long after the start either party still counts as on time.
	// It is also how early the video room opens before the start.
	JoinGrace = 5 * time.Minute

	TrialCancelWindow    = 60 * time.Minute
	StandardCancelWindow = 120 * time.Minute
)

// OpenSlot is an availability slot annotated for the requesting student.
type OpenSlot struct {
	models.AvailabilitySlot
	BookedByYou bool `json:"booked_by_you"`
}

// SlotOpenForBooking reports whether a slot may still be offered on the booking
// page: the lead time has not lapsed, and the slot is either free or carries a
// booking that leaves it claimable again.
func SlotOpenForBooking(slot models.AvailabilitySlot, now time.Time) bool {
	if slot.StartTime.Sub(now) <= BookingLeadTime {
		return false
	}
	if len(slot.Bookings) == 0 && !slot.IsBooked {
		return true
	}
	for _, b := range slot.Bookings {
		if b.Status == models.BookingConfirmed {
			return true
		}
		if b.Status == models.BookingCanceledByStudent && !slot.IsBooked {
			return true
		}
	}
	return false
}

// FilterOpenSlots keeps the given tutor's slots that are still open for booking
// and marks the ones the requesting student already holds.
func FilterOpenSlots(slots []models.AvailabilitySlot, tutorID, studentID uuid.UUID, now time.Time) []OpenSlot {
	open := make([]OpenSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.TutorID != tutorID {
			continue
		}
		if !SlotOpenForBooking(slot, now) {
			continue
		}
		annotated := OpenSlot{AvailabilitySlot: slot}
		for _, b := range slot.Bookings {
			if b.Status == models.BookingConfirmed && b.StudentID == studentID {
				annotated.BookedByYou = true
				break
			}
		}
		open = append(open, annotated)
	}
	return open
}

// Viewpoint selects whose session list a status is rendered for. Cancellation
// labels are worded differently for the party that did the cancelling.
type Viewpoint int

const (
	StudentView Viewpoint = iota
	TutorView
)

type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

const MissedSessionLabel = "Session Missed: Both Tutor and Student Did Not Join"

var statusBadges = map[string]StatusBadge{
	models.BookingConfirmed:         {Label: "Confirmed", Color: "green"},
	models.BookingOngoing:           {Label: "Ongoing", Color: "blue"},
	models.BookingCompleted:         {Label: "Completed", Color: "gray"},
	models.BookingCanceledByTutor:   {Label: "Canceled by tutor", Color: "red"},
	models.BookingCanceledByStudent: {Label: "Canceled by student", Color: "red"},
	models.BookingNoShowByTutor:     {Label: "Tutor did not join", Color: "orange"},
	models.BookingNoShowByStudent:   {Label: "Student did not join", Color: "orange"},
	models.BookingExpired:           {Label: "Expired", Color: "gray"},
}

var defaultBadge = StatusBadge{Label: "Unknown", Color: "neutral"}

// StatusLabel maps a stored booking status to its display badge.
func StatusLabel(status string, viewpoint Viewpoint) StatusBadge {
	if viewpoint == TutorView && status == models.BookingCanceledByTutor {
		return StatusBadge{Label: "You have cancelled this session", Color: "red"}
	}
	if viewpoint == StudentView && status == models.BookingCanceledByStudent {
		return StatusBadge{Label: "You have canceled this session", Color: "red"}
	}
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	return defaultBadge
}

// IsMissed reports whether neither party joined in time. A missed session is a
// derived state: it supersedes whatever status is stored on the booking.
func IsMissed(b models.Booking, startTime, now time.Time) bool {
	return now.After(startTime.Add(JoinGrace)) &&
		!b.StudentJoinedWithin5Min && !b.TutorJoinedWithin5Min
}

// ClassifyBooking resolves the badge shown on a session list, giving the
// missed-session label precedence over the stored status.
func ClassifyBooking(b models.Booking, startTime time.Time, viewpoint Viewpoint, now time.Time) StatusBadge {
	if IsMissed(b, startTime, now) {
		return StatusBadge{Label: MissedSessionLabel, Color: "gray"}
	}
	return StatusLabel(b.Status, viewpoint)
}

// ErrNotConfirmed rejects cancellation of a booking that already left the
// confirmed state.
var ErrNotConfirmed = errors.New("booking has a status other than confirmed")

// CancelWindowError rejects a cancellation attempted inside the lead-time
// window for the session type.
type CancelWindowError struct {
	Window time.Duration
}

func (e *CancelWindowError) Error() string {
	return fmt.Sprintf("cancellation requires at least %d minutes before the session starts", int(e.Window.Minutes()))
}

// CancelWindow returns the minimum notice required to cancel a session type.
func CancelWindow(sessionType string) time.Duration {
	if sessionType == models.SessionTypeTrial {
		return TrialCancelWindow
	}
	return StandardCancelWindow
}

// CanCancel applies the cancellation rule: the booking must still be confirmed
// and the start must be at least the window away. The boundary exactly at the
// threshold is allowed.
func CanCancel(b models.Booking, sessionType string, startTime, now time.Time) error {
	if b.Status != models.BookingConfirmed {
		return ErrNotConfirmed
	}
	window := CancelWindow(sessionType)
	if startTime.Sub(now) < window {
		return &CancelWindowError{Window: window}
	}
	return nil
}

// SlotDeletable reports whether a tutor may hard-delete a slot instead of
// cancelling a booking on it: no bookings, or none that still claim the slot.
func SlotDeletable(slot models.AvailabilitySlot) bool {
	for _, b := range slot.Bookings {
		switch b.Status {
		case models.BookingExpired, models.BookingCanceledByStudent, models.BookingCanceledByTutor:
		default:
			return false
		}
	}
	return true
}

// ReconcileNoShow returns the terminal status the attendance sweep should
// persist for a booking whose join window has passed, or "" when no transition
// applies. Bookings where both parties joined on time are left to the join flow,
// which has already moved them to ongoing.
func ReconcileNoShow(b models.Booking, startTime, now time.Time) string {
	if b.Status != models.BookingConfirmed {
		return ""
	}
	if !now.After(startTime.Add(JoinGrace)) {
		return ""
	}
	if b.TutorJoinedWithin5Min && b.StudentJoinedWithin5Min {
		return ""
	}
	if b.StudentJoinedWithin5Min {
		return models.BookingNoShowByTutor
	}
	return models.BookingNoShowByStudent
}
