package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move between two statuses.
// Pending bookings can be confirmed or cancelled, confirmed bookings can only
// be cancelled, cancelled is final.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCancelled
	}
	return false
}

type Booking struct {
	ID            int64
	ListingID     int64
	GuestID       int64
	ReferenceCode string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalPrice    float64
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
