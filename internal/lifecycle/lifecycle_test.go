package lifecycle

import (
	"testing"
	"time"

	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func at(t *testing.T, loc *time.Location, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return ts
}

func TestNextTransitions(t *testing.T) {
	loc := jakarta(t)

	tests := []struct {
		name        string
		status      string
		now         string
		wantStatus  string
		wantChanged bool
	}{
		{"waiting before window stays waiting", models.StatusWaiting, "2024-06-01 08:00", models.StatusWaiting, false},
		{"waiting inside window becomes ongoing", models.StatusWaiting, "2024-06-01 09:30", models.StatusOngoing, true},
		{"waiting at start becomes ongoing", models.StatusWaiting, "2024-06-01 09:00", models.StatusOngoing, true},
		{"waiting past end becomes completed", models.StatusWaiting, "2024-06-01 11:00", models.StatusCompleted, true},
		{"ongoing inside window stays ongoing", models.StatusOngoing, "2024-06-01 09:45", models.StatusOngoing, false},
		{"ongoing past end becomes completed", models.StatusOngoing, "2024-06-01 10:01", models.StatusCompleted, true},
		{"completed never changes", models.StatusCompleted, "2024-06-01 09:30", models.StatusCompleted, false},
		{"canceled never changes", models.StatusCanceled, "2024-06-01 11:00", models.StatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.Appointment{
				Date:      "2024-06-01",
				StartTime: "09:00:00",
				EndTime:   "10:00:00",
				Status:    tt.status,
			}
			got, changed := Next(a, at(t, loc, tt.now), loc)
			assert.Equal(t, tt.wantStatus, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestNextMalformedFieldsLeaveStatus(t *testing.T) {
	loc := jakarta(t)
	a := &models.Appointment{Date: "june 1st", StartTime: "09:00:00", EndTime: "10:00:00", Status: models.StatusWaiting}
	got, changed := Next(a, at(t, loc, "2024-06-01 09:30"), loc)
	assert.Equal(t, models.StatusWaiting, got)
	assert.False(t, changed)
}

func TestNextUsesClinicZone(t *testing.T) {
	loc := jakarta(t)
	a := &models.Appointment{Date: "2024-06-01", StartTime: "09:00:00", EndTime: "10:00:00", Status: models.StatusWaiting}

	// 02:30 UTC is 09:30 in Jakarta (UTC+7): inside the window.
	now := time.Date(2024, 6, 1, 2, 30, 0, 0, time.UTC)
	got, changed := Next(a, now, loc)
	assert.Equal(t, models.StatusOngoing, got)
	assert.True(t, changed)
}

func TestWindowAcceptsShortClock(t *testing.T) {
	loc := jakarta(t)
	a := &models.Appointment{Date: "2024-06-01", StartTime: "09:00", EndTime: "10:30"}
	start, end, err := Window(a, loc)
	require.NoError(t, err)
	assert.Equal(t, at(t, loc, "2024-06-01 09:00"), start)
	assert.Equal(t, at(t, loc, "2024-06-01 10:30"), end)
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", got)

	_, err = NormalizeClock("9am")
	assert.Error(t, err)
}
