package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/stayfinder/internal/domain"
	"github.com/zvrva/stayfinder/internal/kafka"
	"github.com/zvrva/stayfinder/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListForGuest(ctx context.Context, guestID int64) ([]domain.Booking, error)
	ListForHost(ctx context.Context, hostID int64) ([]domain.Booking, error)
	SetStatus(ctx context.Context, bookingID, requesterID int64, status domain.BookingStatus) (*domain.Booking, error)
	IsAvailable(ctx context.Context, listingID int64, checkIn, checkOut time.Time) (bool, error)
	CancelStalePending(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	listings           repository.ListingRepository
	users              repository.UserRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	autoConfirm        bool
	pendingHold        time.Duration
}

type CreateBookingInput struct {
	ListingID int64
	GuestID   int64
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithAutoConfirm makes guest bookings skip host approval and start out
// confirmed.
func WithAutoConfirm(enabled bool) BookingServiceOption {
	return func(s *BookingService) {
		s.autoConfirm = enabled
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	listings repository.ListingRepository,
	users repository.UserRepository,
	producer Producer,
	bookingTopic string,
	pendingHold time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		listings:     listings,
		users:        users,
		producer:     producer,
		bookingTopic: bookingTopic,
		pendingHold:  pendingHold,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if !input.CheckIn.Before(input.CheckOut) {
		return nil, domain.ErrInvalidDateRange
	}
	if input.Guests > listing.MaxGuests {
		return nil, domain.ErrTooManyGuests
	}

	status := domain.BookingStatusPending
	if s.autoConfirm {
		status = domain.BookingStatusConfirmed
	}

	booking := &domain.Booking{
		ListingID:     input.ListingID,
		GuestID:       input.GuestID,
		ReferenceCode: uuid.NewString(),
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Guests:        input.Guests,
		TotalPrice:    TotalPrice(listing.Price, input.CheckIn, input.CheckOut),
		Status:        status,
	}

	// The repository performs the overlap check and the insert in one
	// statement, so a concurrent request for the same dates cannot slip
	// between a separate check and write.
	if err := s.bookings.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking, listing)
	return booking, nil
}

func (s *BookingService) ListForGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}

func (s *BookingService) ListForHost(ctx context.Context, hostID int64) ([]domain.Booking, error) {
	return s.bookings.ListByHost(ctx, hostID)
}

func (s *BookingService) SetStatus(ctx context.Context, bookingID, requesterID int64, status domain.BookingStatus) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	listing, err := s.listings.GetByID(ctx, current.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.HostID != requesterID {
		return nil, domain.ErrNotOwner
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, domain.ErrStatusTransition
	}

	// Overlapping pending bookings are allowed to pile up, so confirming one
	// must re-check the dates against bookings confirmed since. The booking
	// being confirmed is still pending and does not count against itself.
	if status == domain.BookingStatusConfirmed {
		overlap, err := s.bookings.HasOverlap(ctx, current.ListingID, current.CheckIn, current.CheckOut)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, domain.ErrDatesConflict
		}
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_"+string(status), updated, listing)
	return updated, nil
}

// IsAvailable reports whether the listing is free of confirmed bookings over
// the candidate range. The overlap test is non-strict: a stay that ends the
// day another begins still blocks it.
func (s *BookingService) IsAvailable(ctx context.Context, listingID int64, checkIn, checkOut time.Time) (bool, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return false, err
	}
	if !checkIn.Before(checkOut) {
		return false, domain.ErrInvalidDateRange
	}
	overlap, err := s.bookings.HasOverlap(ctx, listingID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// CancelStalePending cancels pending bookings the host never acted on within
// the hold window. A zero hold disables the sweep.
func (s *BookingService) CancelStalePending(ctx context.Context) ([]domain.Booking, error) {
	if s.pendingHold <= 0 {
		return nil, nil
	}
	cancelled, err := s.bookings.CancelPendingBefore(ctx, time.Now().Add(-s.pendingHold))
	if err != nil {
		return nil, err
	}
	for i := range cancelled {
		listing, err := s.listings.GetByID(ctx, cancelled[i].ListingID)
		if err != nil {
			log.Printf("load listing %d for cancelled booking event: %v", cancelled[i].ListingID, err)
			continue
		}
		s.publish(ctx, "booking_cancelled", &cancelled[i], listing)
	}
	return cancelled, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, listing *domain.Listing) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	guestEmail := ""
	if guest, err := s.users.GetByID(ctx, booking.GuestID); err == nil {
		guestEmail = guest.Email
	}

	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		ListingID:     booking.ListingID,
		ListingTitle:  listing.Title,
		GuestEmail:    guestEmail,
		Status:        string(booking.Status),
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		TotalPrice:    booking.TotalPrice,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ReferenceCode, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ReferenceCode, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ReferenceCode, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, booking.ReferenceCode, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
