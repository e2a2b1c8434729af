package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/stayfinder/internal/domain"
)

type BookingRepository interface {
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	HasOverlap(ctx context.Context, listingID int64, checkIn, checkOut time.Time) (bool, error)
	CancelPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, listing_id, guest_id, reference_code, check_in, check_out, guests, total_price, status, created_at, updated_at`

// overlapCondition is deliberately non-strict: a booking ending exactly when
// another begins still counts as a conflict, so back-to-back stays on the
// same listing are rejected.
const overlapCondition = `listing_id=$1 AND status='confirmed' AND check_in <= $3 AND check_out >= $2`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.ListingID, &b.GuestID, &b.ReferenceCode, &b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateIfAvailable inserts the booking only when no confirmed booking on the
// same listing overlaps its date range. The availability check and the insert
// run as a single statement, so two concurrent requests for overlapping dates
// cannot both succeed.
func (r *PGBookingRepository) CreateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (listing_id, guest_id, reference_code, check_in, check_out, guests, total_price, status)
		SELECT $1, $4, $5, $2, $3, $6, $7, $8
		WHERE NOT EXISTS (SELECT 1 FROM bookings WHERE `+overlapCondition+`)
		RETURNING id, created_at, updated_at`,
		booking.ListingID, booking.CheckIn, booking.CheckOut, booking.GuestID, booking.ReferenceCode, booking.Guests, booking.TotalPrice, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDatesConflict
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *PGBookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE guest_id=$1 ORDER BY created_at DESC`, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.listing_id, b.guest_id, b.reference_code, b.check_in, b.check_out, b.guests, b.total_price, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE l.host_id=$1
		ORDER BY b.created_at DESC`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		if isExclusionViolation(err) {
			return nil, domain.ErrDatesConflict
		}
		return nil, err
	}
	return booking, nil
}

// isExclusionViolation matches SQLSTATE 23P01, raised by the confirmed-booking
// exclusion constraint when a status change would produce overlapping stays.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func (r *PGBookingRepository) HasOverlap(ctx context.Context, listingID int64, checkIn, checkOut time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE `+overlapCondition+`)`, listingID, checkIn, checkOut).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) CancelPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE status=$2 AND created_at <= $3 RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, domain.BookingStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
