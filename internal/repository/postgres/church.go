package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
)

// PostgresChurchRepository implements the ChurchRepository interface
type PostgresChurchRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewChurchRepository creates a new church repository
func NewChurchRepository(config *RepositoryConfig) repositories.ChurchRepository {
	return &PostgresChurchRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const churchColumns = `id, name, description, logo_url, website_url, address, city, state, zip_code, country, phone_number, email, subscription_plan, stripe_customer_id, stripe_subscription_id, is_active, is_verified, created_at, updated_at`

func scanChurch(row interface{ Scan(...any) error }) (*models.Church, error) {
	var church models.Church
	err := row.Scan(
		&church.ID,
		&church.Name,
		&church.Description,
		&church.LogoURL,
		&church.WebsiteURL,
		&church.Address,
		&church.City,
		&church.State,
		&church.ZipCode,
		&church.Country,
		&church.PhoneNumber,
		&church.Email,
		&church.SubscriptionPlan,
		&church.StripeCustomerID,
		&church.StripeSubscriptionID,
		&church.IsActive,
		&church.IsVerified,
		&church.CreatedAt,
		&church.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &church, nil
}

// Create creates a new church
func (r *PostgresChurchRepository) Create(ctx context.Context, church *models.Church) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, r.tables.Churches, churchColumns)

	_, err := r.pool.Exec(ctx, query,
		church.ID,
		church.Name,
		church.Description,
		church.LogoURL,
		church.WebsiteURL,
		church.Address,
		church.City,
		church.State,
		church.ZipCode,
		church.Country,
		church.PhoneNumber,
		church.Email,
		church.SubscriptionPlan,
		church.StripeCustomerID,
		church.StripeSubscriptionID,
		church.IsActive,
		church.IsVerified,
		church.CreatedAt,
		church.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("church '%s' already exists", church.Name),
				ResourceType: "church",
			}
		}
		return fmt.Errorf("create church: %w", err)
	}

	return nil
}

// GetByID retrieves a church by ID
func (r *PostgresChurchRepository) GetByID(ctx context.Context, id string) (*models.Church, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, churchColumns, r.tables.Churches)

	church, err := scanChurch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("church %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get church: %w", err)
	}

	return church, nil
}

// GetByName retrieves a church by exact name
func (r *PostgresChurchRepository) GetByName(ctx context.Context, name string) (*models.Church, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE name = $1`, churchColumns, r.tables.Churches)

	church, err := scanChurch(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("church '%s': %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get church by name: %w", err)
	}

	return church, nil
}

// List retrieves all churches, newest first
func (r *PostgresChurchRepository) List(ctx context.Context) ([]models.Church, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, churchColumns, r.tables.Churches)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	defer rows.Close()

	churches := []models.Church{}
	for rows.Next() {
		church, err := scanChurch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan church: %w", err)
		}
		churches = append(churches, *church)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate churches: %w", err)
	}

	return churches, nil
}

// Update updates a church's mutable fields
func (r *PostgresChurchRepository) Update(ctx context.Context, church *models.Church) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, logo_url = $3, website_url = $4,
		    address = $5, city = $6, state = $7, zip_code = $8, country = $9,
		    phone_number = $10, email = $11, subscription_plan = $12,
		    stripe_customer_id = $13, stripe_subscription_id = $14,
		    is_active = $15, is_verified = $16, updated_at = $17
		WHERE id = $18
	`, r.tables.Churches)

	tag, err := r.pool.Exec(ctx, query,
		church.Name,
		church.Description,
		church.LogoURL,
		church.WebsiteURL,
		church.Address,
		church.City,
		church.State,
		church.ZipCode,
		church.Country,
		church.PhoneNumber,
		church.Email,
		church.SubscriptionPlan,
		church.StripeCustomerID,
		church.StripeSubscriptionID,
		church.IsActive,
		church.IsVerified,
		church.UpdatedAt,
		church.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("church '%s' already exists", church.Name),
				ResourceType: "church",
			}
		}
		return fmt.Errorf("update church: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("church %s: %w", church.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a church
func (r *PostgresChurchRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Churches)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete church: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("church %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
