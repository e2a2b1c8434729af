package booking

import (
	"math"
	"time"
)

// Nights returns the number of nights charged for a stay. Any partial day
// counts as a full night, so the duration is rounded up.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// TotalPrice computes the charge for a stay at the given nightly rate.
// Callers must validate checkOut > checkIn first.
func TotalPrice(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	return float64(Nights(checkIn, checkOut)) * nightlyRate
}
