package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// BookingFilter narrows booking views.
type BookingFilter struct {
	VendorEmail *string
	BuyerEmail  *string
	Status      *string
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, listing_id, buyer_email, vendor_email, type,
               from_location, to_location, price, status, track_id, created_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (listing_id, buyer_email, vendor_email, type, from_location, to_location, price, status, track_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		booking.ListingID,
		booking.BuyerEmail,
		booking.VendorEmail,
		booking.Type,
		booking.FromLocation,
		booking.ToLocation,
		booking.Price,
		booking.Status,
		booking.TrackID,
	).Scan(&booking.ID, &booking.CreatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id=$1`, bookingColumns)

	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.BuyerEmail,
		&booking.VendorEmail,
		&booking.Type,
		&booking.FromLocation,
		&booking.ToLocation,
		&booking.Price,
		&booking.Status,
		&booking.TrackID,
		&booking.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.VendorEmail != nil {
		args = append(args, *filter.VendorEmail)
		clauses = append(clauses, fmt.Sprintf("vendor_email=$%d", len(args)))
	}
	if filter.BuyerEmail != nil {
		args = append(args, *filter.BuyerEmail)
		clauses = append(clauses, fmt.Sprintf("buyer_email=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC`,
		bookingColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.ListingID,
			&booking.BuyerEmail,
			&booking.VendorEmail,
			&booking.Type,
			&booking.FromLocation,
			&booking.ToLocation,
			&booking.Price,
			&booking.Status,
			&booking.TrackID,
			&booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
