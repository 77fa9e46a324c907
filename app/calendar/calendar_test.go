package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/app/calendar"
	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

func TestGridShape(t *testing.T) {
	cases := []struct {
		year, month  int
		blanks, days int
		name         string
	}{
		{2024, 6, 6, 30, "June"},      // Saturday the 1st
		{2024, 9, 0, 30, "September"}, // Sunday the 1st
		{2024, 2, 4, 29, "February"},  // leap year, Thursday the 1st
		{2023, 2, 3, 28, "February"},
		{2025, 1, 3, 31, "January"},
	}

	for _, tc := range cases {
		m, err := calendar.Project(nil, tc.year, tc.month)
		require.NoError(t, err)

		assert.Equal(t, tc.blanks, m.LeadingBlanks, "%d-%d", tc.year, tc.month)
		assert.Equal(t, tc.days, m.DaysInMonth)
		assert.Equal(t, tc.name, m.Name)
		assert.Len(t, m.Cells, tc.blanks+tc.days)

		for i := 0; i < tc.blanks; i++ {
			assert.Nil(t, m.Cells[i])
		}
		require.NotNil(t, m.Cells[tc.blanks])
		assert.Equal(t, 1, m.Cells[tc.blanks].Day)
		assert.Equal(t, tc.days, m.Cells[len(m.Cells)-1].Day)
	}
}

func TestOnlyConfirmedOnExactDate(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, Date: "2024-06-01", Status: models.StatusConfirmed},
		{ID: 2, Date: "2024-06-01", Status: models.StatusPending},
		{ID: 3, Date: "2024-06-15", Status: models.StatusRejected},
		{ID: 4, Date: "2024-06-15", Status: models.StatusConfirmed},
		{ID: 5, Date: "2024-6-15", Status: models.StatusConfirmed},  // not the canonical string
		{ID: 6, Date: "2024-07-01", Status: models.StatusConfirmed}, // other month
		{ID: 7, Date: "2024-06-01", Status: models.StatusConfirmed},
	}

	m, err := calendar.Project(bookings, 2024, 6)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Total(), "N confirmed in the month, M others ignored")

	day1 := m.Days()[0]
	assert.Equal(t, "2024-06-01", day1.Date)
	require.Len(t, day1.Bookings, 2)
	assert.Equal(t, uint(1), day1.Bookings[0].ID, "input order is kept")
	assert.Equal(t, uint(7), day1.Bookings[1].ID)

	day15 := m.Days()[14]
	require.Len(t, day15.Bookings, 1)
	assert.Equal(t, uint(4), day15.Bookings[0].ID)

	assert.Empty(t, m.Days()[1].Bookings)
	assert.NotNil(t, m.Days()[1].Bookings)
}

func TestInputIsNotMutated(t *testing.T) {
	bookings := []models.Booking{
		{ID: 2, Date: "2024-06-02", Status: models.StatusConfirmed},
		{ID: 1, Date: "2024-06-01", Status: models.StatusConfirmed},
	}
	snapshot := append([]models.Booking(nil), bookings...)

	_, err := calendar.Project(bookings, 2024, 6)
	require.NoError(t, err)
	assert.Equal(t, snapshot, bookings)
}

func TestRejectsBadMonth(t *testing.T) {
	for _, tc := range [][2]int{{2024, 0}, {2024, 13}, {0, 6}, {10000, 1}} {
		_, err := calendar.Project(nil, tc[0], tc[1])
		assert.True(t, apperr.IsValidation(err), "%v", tc)
	}
}
