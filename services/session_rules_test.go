package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiprotich-dev/lingua_connect/models"
)

func slotAt(tutorID uuid.UUID, startIn time.Duration, now time.Time) models.AvailabilitySlot {
	return models.AvailabilitySlot{
		ID:        uuid.New(),
		TutorID:   tutorID,
		StartTime: now.Add(startIn),
		EndTime:   now.Add(startIn + time.Hour),
	}
}

func TestSlotOpenForBookingLeadTime(t *testing.T) {
	now := time.Now()
	tutorID := uuid.New()

	cases := []struct {
		name    string
		startIn time.Duration
		open    bool
	}{
		{"well in the future", 48 * time.Hour, true},
		{"just over the lead time", 3*time.Hour + time.Minute, true},
		{"exactly at the lead time", 3 * time.Hour, false},
		{"inside the lead time", 2 * time.Hour, false},
		{"already started", -time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot := slotAt(tutorID, tc.startIn, now)
			assert.Equal(t, tc.open, SlotOpenForBooking(slot, now))
		})
	}
}

func TestSlotOpenForBookingStates(t *testing.T) {
	now := time.Now()
	tutorID := uuid.New()

	free := slotAt(tutorID, 24*time.Hour, now)
	assert.True(t, SlotOpenForBooking(free, now))

	// A slot flagged booked with no surviving booking is not offered.
	orphaned := slotAt(tutorID, 24*time.Hour, now)
	orphaned.IsBooked = true
	assert.False(t, SlotOpenForBooking(orphaned, now))

	confirmed := slotAt(tutorID, 24*time.Hour, now)
	confirmed.IsBooked = true
	confirmed.Bookings = []models.Booking{{Status: models.BookingConfirmed}}
	assert.True(t, SlotOpenForBooking(confirmed, now))

	// A student cancellation reopens the slot.
	reopened := slotAt(tutorID, 24*time.Hour, now)
	reopened.Bookings = []models.Booking{{Status: models.BookingCanceledByStudent}}
	assert.True(t, SlotOpenForBooking(reopened, now))

	// Unless the slot was claimed again in the meantime.
	reclaimed := slotAt(tutorID, 24*time.Hour, now)
	reclaimed.IsBooked = true
	reclaimed.Bookings = []models.Booking{{Status: models.BookingCanceledByStudent}}
	assert.False(t, SlotOpenForBooking(reclaimed, now))
}

func TestFilterOpenSlots(t *testing.T) {
	now := time.Now()
	tutorID := uuid.New()
	otherTutor := uuid.New()
	studentID := uuid.New()

	mine := slotAt(tutorID, 24*time.Hour, now)
	mine.IsBooked = true
	mine.Bookings = []models.Booking{{StudentID: studentID, Status: models.BookingConfirmed}}

	taken := slotAt(tutorID, 24*time.Hour, now)
	taken.IsBooked = true
	taken.Bookings = []models.Booking{{StudentID: uuid.New(), Status: models.BookingConfirmed}}

	tooSoon := slotAt(tutorID, time.Hour, now)
	foreign := slotAt(otherTutor, 24*time.Hour, now)

	open := FilterOpenSlots([]models.AvailabilitySlot{mine, taken, tooSoon, foreign}, tutorID, studentID, now)
	require.Len(t, open, 2)
	assert.Equal(t, mine.ID, open[0].ID)
	assert.True(t, open[0].BookedByYou)
	assert.Equal(t, taken.ID, open[1].ID)
	assert.False(t, open[1].BookedByYou)
}

func TestStatusLabelViewpoints(t *testing.T) {
	assert.Equal(t, "You have cancelled this session", StatusLabel(models.BookingCanceledByTutor, TutorView).Label)
	assert.Equal(t, "Canceled by tutor", StatusLabel(models.BookingCanceledByTutor, StudentView).Label)

	assert.Equal(t, "You have canceled this session", StatusLabel(models.BookingCanceledByStudent, StudentView).Label)
	assert.Equal(t, "Canceled by student", StatusLabel(models.BookingCanceledByStudent, TutorView).Label)

	assert.Equal(t, "Confirmed", StatusLabel(models.BookingConfirmed, StudentView).Label)
	assert.Equal(t, defaultBadge, StatusLabel("something_new", StudentView))
}

func TestIsMissed(t *testing.T) {
	now := time.Now()

	b := models.Booking{Status: models.BookingConfirmed}
	assert.True(t, IsMissed(b, now.Add(-10*time.Minute), now))

	// Exactly five minutes after the start is not yet missed.
	assert.False(t, IsMissed(b, now.Add(-JoinGrace), now))
	assert.False(t, IsMissed(b, now.Add(time.Minute), now))

	joined := models.Booking{Status: models.BookingConfirmed, StudentJoinedWithin5Min: true}
	assert.False(t, IsMissed(joined, now.Add(-10*time.Minute), now))
}

func TestClassifyBookingMissedPrecedence(t *testing.T) {
	now := time.Now()

	// Stale confirmed status with no join flags: the missed label wins.
	b := models.Booking{Status: models.BookingConfirmed}
	badge := ClassifyBooking(b, now.Add(-30*time.Minute), StudentView, now)
	assert.Equal(t, MissedSessionLabel, badge.Label)

	b.Status = models.BookingCompleted
	badge = ClassifyBooking(b, now.Add(-30*time.Minute), StudentView, now)
	assert.Equal(t, MissedSessionLabel, badge.Label)

	b.TutorJoinedWithin5Min = true
	badge = ClassifyBooking(b, now.Add(-30*time.Minute), StudentView, now)
	assert.Equal(t, "Completed", badge.Label)
}

func TestCanCancelWindows(t *testing.T) {
	now := time.Now()
	confirmed := models.Booking{Status: models.BookingConfirmed}

	cases := []struct {
		name        string
		sessionType string
		startIn     time.Duration
		allowed     bool
	}{
		{"trial outside window", models.SessionTypeTrial, 90 * time.Minute, true},
		{"trial exactly at threshold", models.SessionTypeTrial, 60 * time.Minute, true},
		{"trial inside window", models.SessionTypeTrial, 59 * time.Minute, false},
		{"standard outside window", models.SessionTypeStandard, 3 * time.Hour, true},
		{"standard exactly at threshold", models.SessionTypeStandard, 120 * time.Minute, true},
		{"standard inside window", models.SessionTypeStandard, 119 * time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanCancel(confirmed, tc.sessionType, now.Add(tc.startIn), now)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				var windowErr *CancelWindowError
				require.ErrorAs(t, err, &windowErr)
				assert.Equal(t, CancelWindow(tc.sessionType), windowErr.Window)
			}
		})
	}
}

func TestCanCancelStatus(t *testing.T) {
	now := time.Now()
	start := now.Add(24 * time.Hour)

	for _, status := range []string{
		models.BookingOngoing,
		models.BookingCompleted,
		models.BookingCanceledByStudent,
		models.BookingNoShowByTutor,
	} {
		b := models.Booking{Status: status}
		assert.ErrorIs(t, CanCancel(b, models.SessionTypeStandard, start, now), ErrNotConfirmed, status)
	}
}

func TestSlotDeletable(t *testing.T) {
	empty := models.AvailabilitySlot{}
	assert.True(t, SlotDeletable(empty))

	canceled := models.AvailabilitySlot{Bookings: []models.Booking{
		{Status: models.BookingCanceledByStudent},
		{Status: models.BookingExpired},
	}}
	assert.True(t, SlotDeletable(canceled))

	claimed := models.AvailabilitySlot{Bookings: []models.Booking{
		{Status: models.BookingCanceledByStudent},
		{Status: models.BookingConfirmed},
	}}
	assert.False(t, SlotDeletable(claimed))
}

func TestReconcileNoShow(t *testing.T) {
	now := time.Now()
	past := now.Add(-10 * time.Minute)

	both := models.Booking{Status: models.BookingConfirmed}
	assert.Equal(t, models.BookingNoShowByStudent, ReconcileNoShow(both, past, now))

	tutorAbsent := models.Booking{Status: models.BookingConfirmed, StudentJoinedWithin5Min: true}
	assert.Equal(t, models.BookingNoShowByTutor, ReconcileNoShow(tutorAbsent, past, now))

	studentAbsent := models.Booking{Status: models.BookingConfirmed, TutorJoinedWithin5Min: true}
	assert.Equal(t, models.BookingNoShowByStudent, ReconcileNoShow(studentAbsent, past, now))

	bothJoined := models.Booking{Status: models.BookingConfirmed, StudentJoinedWithin5Min: true, TutorJoinedWithin5Min: true}
	assert.Equal(t, "", ReconcileNoShow(bothJoined, past, now))

	tooEarly := models.Booking{Status: models.BookingConfirmed}
	assert.Equal(t, "", ReconcileNoShow(tooEarly, now.Add(-JoinGrace), now))

	alreadyTerminal := models.Booking{Status: models.BookingCanceledByStudent}
	assert.Equal(t, "", ReconcileNoShow(alreadyTerminal, past, now))
}
