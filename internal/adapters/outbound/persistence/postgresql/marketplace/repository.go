package marketplace

import (
	"context"
	"database/sql"
	stderrors "errors"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *sql.DB
}

var _ portsout.MarketplaceListingRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context, input dto.ListActiveListingsInput) (dto.ListActiveListingsOutput, *apperrors.AppError) {
	const countQuery = `
SELECT COUNT(*)
FROM app.marketplace_listings
WHERE status = 'active'
`
	const listQuery = `
SELECT
  id,
  seller_account_id,
  token_id,
  serial_number,
  price_tinybar,
  name,
  creator,
  image_url,
  created_at
FROM app.marketplace_listings
WHERE status = 'active'
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

	output := dto.ListActiveListingsOutput{Listings: []dto.MarketplaceListing{}}
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&output.Total); err != nil {
		return dto.ListActiveListingsOutput{}, apperrors.NewInternal(
			"marketplace_listing_query_failed",
			"failed to count marketplace listings",
			map[string]any{"error": err.Error()},
		)
	}
	if output.Total == 0 || input.Offset >= output.Total {
		return output, nil
	}

	rows, err := r.db.QueryContext(ctx, listQuery, input.Limit, input.Offset)
	if err != nil {
		return dto.ListActiveListingsOutput{}, apperrors.NewInternal(
			"marketplace_listing_query_failed",
			"failed to query marketplace listings",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	for rows.Next() {
		listing := dto.MarketplaceListing{}
		if err := rows.Scan(
			&listing.ID,
			&listing.SellerAccount,
			&listing.TokenID,
			&listing.SerialNumber,
			&listing.PriceTinybar,
			&listing.Name,
			&listing.Creator,
			&listing.ImageURL,
			&listing.CreatedAt,
		); err != nil {
			return dto.ListActiveListingsOutput{}, apperrors.NewInternal(
				"marketplace_listing_scan_failed",
				"failed to scan marketplace listing",
				map[string]any{"error": err.Error()},
			)
		}
		listing.CreatedAt = listing.CreatedAt.UTC()
		output.Listings = append(output.Listings, listing)
	}
	if err := rows.Err(); err != nil {
		return dto.ListActiveListingsOutput{}, apperrors.NewInternal(
			"marketplace_listing_query_failed",
			"failed to iterate marketplace listings",
			map[string]any{"error": err.Error()},
		)
	}

	return output, nil
}

func (r *Repository) Create(ctx context.Context, listing dto.MarketplaceListing) *apperrors.AppError {
	const query = `
INSERT INTO app.marketplace_listings (
  id,
  seller_account_id,
  token_id,
  serial_number,
  price_tinybar,
  name,
  creator,
  image_url,
  status,
  created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', $9)
`

	_, err := r.db.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.SellerAccount,
		listing.TokenID,
		listing.SerialNumber,
		listing.PriceTinybar,
		listing.Name,
		listing.Creator,
		listing.ImageURL,
		listing.CreatedAt,
	)
	if isUniqueViolation(err) {
		return apperrors.NewConflict(
			"listing_already_exists",
			"the asset already has an active listing",
			map[string]any{"token_id": listing.TokenID, "serial_number": listing.SerialNumber},
		)
	}
	if err != nil {
		return apperrors.NewInternal(
			"marketplace_listing_insert_failed",
			"failed to insert marketplace listing",
			map[string]any{"error": err.Error()},
		)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505"
}
