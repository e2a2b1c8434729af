package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	testCases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{
			name:     "three full nights",
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 4),
			expected: 3,
		},
		{
			name:     "single night",
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 2),
			expected: 1,
		},
		{
			name:     "partial day rounds up",
			checkIn:  time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "one hour rounds up to one night",
			checkIn:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Nights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	total := TotalPrice(189, date(2024, 6, 1), date(2024, 6, 4))
	assert.Equal(t, float64(567), total)

	total = TotalPrice(120.5, date(2024, 6, 1), date(2024, 6, 3))
	assert.Equal(t, 241.0, total)
}
