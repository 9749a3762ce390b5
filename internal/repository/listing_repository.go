package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// PriceSort enumerates marketplace price orderings.
type PriceSort string

const (
	PriceSortNone PriceSort = ""
	PriceSortLow  PriceSort = "low"
	PriceSortHigh PriceSort = "high"
)

// ListingFilter captures the raw operational listing query.
type ListingFilter struct {
	Status      *domain.ListingStatus
	VendorEmail *string
}

// MarketplaceFilter refines the public marketplace view. Prefixes match
// case-insensitively against the start of the location fields; Transport
// matches the type exactly.
type MarketplaceFilter struct {
	FromPrefix *string
	ToPrefix   *string
	Transport  *string
	Sort       PriceSort
}

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	ListMarketplace(ctx context.Context, filter MarketplaceFilter) ([]domain.Listing, error)
	ListLatest(ctx context.Context, limit int) ([]domain.Listing, error)
	ListAdvertised(ctx context.Context) ([]domain.Listing, error)
	UpdateContent(ctx context.Context, listing *domain.Listing) error
	SetStatus(ctx context.Context, id string, status domain.ListingStatus) error
	Delete(ctx context.Context, id string) error
	CountAdvertised(ctx context.Context) (int, error)
	SetAdvertise(ctx context.Context, id string, desired bool) (bool, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

const listingColumns = `id, vendor_email, type, from_location, to_location,
               price, quantity, status, advertise, created_at, updated_at`

// approvedListings restricts marketplace queries to moderated listings.
// Fraud-vendor exclusion happens in the marketplace service.
const approvedListings = `status='approve'`

// likeEscaper neutralizes LIKE metacharacters so user-supplied prefixes
// cannot widen the match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern builds the case-insensitive prefix pattern for a location
// filter.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(strings.ToLower(prefix)) + "%"
}

// marketplaceOrder maps a price sort onto the ORDER BY clause, falling
// back to creation order so unsorted results stay deterministic.
func marketplaceOrder(sort PriceSort) string {
	switch sort {
	case PriceSortLow:
		return "price ASC"
	case PriceSortHigh:
		return "price DESC"
	}
	return "created_at ASC"
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (vendor_email, type, from_location, to_location, price, quantity, status, advertise)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.VendorEmail,
		listing.Type,
		listing.FromLocation,
		listing.ToLocation,
		listing.Price,
		listing.Quantity,
		listing.Status,
		listing.Advertise,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id=$1`, listingColumns)

	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.VendorEmail,
		&listing.Type,
		&listing.FromLocation,
		&listing.ToLocation,
		&listing.Price,
		&listing.Quantity,
		&listing.Status,
		&listing.Advertise,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.VendorEmail != nil {
		args = append(args, *filter.VendorEmail)
		clauses = append(clauses, fmt.Sprintf("vendor_email=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY created_at DESC`,
		listingColumns, strings.Join(clauses, " AND "))

	return r.queryListings(ctx, query, args...)
}

func (r *listingRepository) ListMarketplace(ctx context.Context, filter MarketplaceFilter) ([]domain.Listing, error) {
	clauses := []string{approvedListings}
	args := []any{}

	if filter.FromPrefix != nil {
		args = append(args, prefixPattern(*filter.FromPrefix))
		clauses = append(clauses, fmt.Sprintf("LOWER(from_location) LIKE $%d", len(args)))
	}
	if filter.ToPrefix != nil {
		args = append(args, prefixPattern(*filter.ToPrefix))
		clauses = append(clauses, fmt.Sprintf("LOWER(to_location) LIKE $%d", len(args)))
	}
	if filter.Transport != nil {
		args = append(args, *filter.Transport)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY %s`,
		listingColumns, strings.Join(clauses, " AND "), marketplaceOrder(filter.Sort))

	return r.queryListings(ctx, query, args...)
}

// ListLatest returns approved listings newest first. A non-positive limit
// returns the full set; callers trimming after fraud exclusion rely on
// that.
func (r *listingRepository) ListLatest(ctx context.Context, limit int) ([]domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY created_at DESC`,
		listingColumns, approvedListings)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	return r.queryListings(ctx, query)
}

func (r *listingRepository) ListAdvertised(ctx context.Context) ([]domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE advertise ORDER BY created_at DESC`, listingColumns)
	return r.queryListings(ctx, query)
}

func (r *listingRepository) UpdateContent(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE listings SET type=$1, from_location=$2, to_location=$3, price=$4, quantity=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		listing.Type,
		listing.FromLocation,
		listing.ToLocation,
		listing.Price,
		listing.Quantity,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) SetStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	const query = `UPDATE listings SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) CountAdvertised(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE advertise`).Scan(&count)
	return count, err
}

// SetAdvertise applies the advertise flag. Enabling is conditional on the
// advertised set being under capacity; the returned bool reports whether
// the flag was applied.
func (r *listingRepository) SetAdvertise(ctx context.Context, id string, desired bool) (bool, error) {
	if !desired {
		cmd, err := r.pool.Exec(ctx, `UPDATE listings SET advertise=FALSE, updated_at=NOW() WHERE id=$1`, id)
		if err != nil {
			return false, err
		}
		if cmd.RowsAffected() == 0 {
			return false, pgx.ErrNoRows
		}
		return true, nil
	}

	const query = `
        UPDATE listings SET advertise=TRUE, updated_at=NOW()
        WHERE id=$1
          AND (SELECT COUNT(*) FROM listings WHERE advertise AND id <> $1) < $2`
	cmd, err := r.pool.Exec(ctx, query, id, domain.AdvertiseCapacity)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.VendorEmail,
			&listing.Type,
			&listing.FromLocation,
			&listing.ToLocation,
			&listing.Price,
			&listing.Quantity,
			&listing.Status,
			&listing.Advertise,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
