package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/stayfinder/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, id int64, update domain.ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Listing, error)
}

type PGListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) ListingRepository {
	return &PGListingRepository{db: db}
}

const listingColumns = `id, title, description, price, location, images, amenities, host_id, host_name, max_guests, bedrooms, bathrooms, property_type, rating, reviews, is_available, created_at, updated_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.Location, &l.Images, &l.Amenities, &l.HostID, &l.HostName, &l.MaxGuests, &l.Bedrooms, &l.Bathrooms, &l.PropertyType, &l.Rating, &l.Reviews, &l.IsAvailable, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PGListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	return r.db.QueryRow(ctx, `INSERT INTO listings (title, description, price, location, images, amenities, host_id, host_name, max_guests, bedrooms, bathrooms, property_type, rating, reviews, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		listing.Title, listing.Description, listing.Price, listing.Location, listing.Images, listing.Amenities, listing.HostID, listing.HostName, listing.MaxGuests, listing.Bedrooms, listing.Bathrooms, listing.PropertyType, listing.Rating, listing.Reviews, listing.IsAvailable).
		Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *PGListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id=$1`, id)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (r *PGListingRepository) Update(ctx context.Context, id int64, update domain.ListingUpdate) (*domain.Listing, error) {
	sets := make([]string, 0, 12)
	args := make([]interface{}, 0, 13)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.Images != nil {
		add("images", update.Images)
	}
	if update.Amenities != nil {
		add("amenities", update.Amenities)
	}
	if update.HostName != nil {
		add("host_name", *update.HostName)
	}
	if update.MaxGuests != nil {
		add("max_guests", *update.MaxGuests)
	}
	if update.Bedrooms != nil {
		add("bedrooms", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		add("bathrooms", *update.Bathrooms)
	}
	if update.PropertyType != nil {
		add("property_type", *update.PropertyType)
	}
	if update.IsAvailable != nil {
		add("is_available", *update.IsAvailable)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=now()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE listings SET %s WHERE id=$%d RETURNING %s`, strings.Join(sets, ", "), len(args), listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (r *PGListingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// BuildSearchQuery translates the optional criteria into a WHERE clause and
// argument list. Only available listings are ever matched; results come back
// newest first.
func BuildSearchQuery(criteria domain.SearchCriteria) (string, []interface{}) {
	conditions := []string{"is_available = TRUE"}
	args := make([]interface{}, 0, 5)

	if criteria.Location != "" {
		args = append(args, "%"+criteria.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if criteria.MinPrice != nil {
		args = append(args, *criteria.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if criteria.MaxPrice != nil {
		args = append(args, *criteria.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if criteria.Guests > 0 {
		args = append(args, criteria.Guests)
		conditions = append(conditions, fmt.Sprintf("max_guests >= $%d", len(args)))
	}
	if len(criteria.PropertyTypes) > 0 {
		args = append(args, criteria.PropertyTypes)
		conditions = append(conditions, fmt.Sprintf("property_type = ANY($%d)", len(args)))
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`
	return query, args
}

func (r *PGListingRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error) {
	query, args := BuildSearchQuery(criteria)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *PGListingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Listing, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listingColumns+` FROM listings WHERE host_id=$1 ORDER BY created_at DESC`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectListings(rows)
}

func collectListings(rows pgx.Rows) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

var _ ListingRepository = (*PGListingRepository)(nil)
