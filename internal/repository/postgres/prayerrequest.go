package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
)

// PostgresPrayerRequestRepository implements the PrayerRequestRepository interface
type PostgresPrayerRequestRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPrayerRequestRepository creates a new prayer request repository
func NewPrayerRequestRepository(config *RepositoryConfig) repositories.PrayerRequestRepository {
	return &PostgresPrayerRequestRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const prayerRequestColumns = `id, title, content, status, visibility, user_id, church_id, related_bible_verses, ai_response, prayer_count, last_scanned_at, created_at, updated_at`

func scanPrayerRequest(row interface{ Scan(...any) error }) (*models.PrayerRequest, error) {
	var request models.PrayerRequest
	err := row.Scan(
		&request.ID,
		&request.Title,
		&request.Content,
		&request.Status,
		&request.Visibility,
		&request.UserID,
		&request.ChurchID,
		&request.RelatedBibleVerses,
		&request.AIResponse,
		&request.PrayerCount,
		&request.LastScannedAt,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create creates a new prayer request
func (r *PostgresPrayerRequestRepository) Create(ctx context.Context, request *models.PrayerRequest) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.PrayerRequests, prayerRequestColumns)

	_, err := r.pool.Exec(ctx, query,
		request.ID,
		request.Title,
		request.Content,
		request.Status,
		request.Visibility,
		request.UserID,
		request.ChurchID,
		request.RelatedBibleVerses,
		request.AIResponse,
		request.PrayerCount,
		request.LastScannedAt,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("church %s: %w", request.ChurchID, domain.ErrNotFound)
		}
		return fmt.Errorf("create prayer request: %w", err)
	}

	return nil
}

// GetByID retrieves a prayer request by ID
func (r *PostgresPrayerRequestRepository) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, prayerRequestColumns, r.tables.PrayerRequests)

	request, err := scanPrayerRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get prayer request: %w", err)
	}

	return request, nil
}

// ListByChurch retrieves a church's prayer requests, newest first. No
// visibility filtering happens here; callers filter per actor.
func (r *PostgresPrayerRequestRepository) ListByChurch(ctx context.Context, churchID string, status models.PrayerRequestStatus) ([]models.PrayerRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE church_id = $1`, prayerRequestColumns, r.tables.PrayerRequests)
	args := []any{churchID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prayer requests: %w", err)
	}
	defer rows.Close()

	requests := []models.PrayerRequest{}
	for rows.Next() {
		request, err := scanPrayerRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prayer request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prayer requests: %w", err)
	}

	return requests, nil
}

// Update updates a prayer request's mutable fields
func (r *PostgresPrayerRequestRepository) Update(ctx context.Context, request *models.PrayerRequest) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, status = $3, visibility = $4,
		    related_bible_verses = $5, ai_response = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.PrayerRequests)

	tag, err := r.pool.Exec(ctx, query,
		request.Title,
		request.Content,
		request.Status,
		request.Visibility,
		request.RelatedBibleVerses,
		request.AIResponse,
		request.UpdatedAt,
		request.ID,
	)

	if err != nil {
		return fmt.Errorf("update prayer request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prayer request %s: %w", request.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a prayer request
func (r *PostgresPrayerRequestRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.PrayerRequests)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete prayer request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementPrayerCount bumps the prayed-for counter without touching updated_at
func (r *PostgresPrayerRequestRepository) IncrementPrayerCount(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET prayer_count = prayer_count + 1 WHERE id = $1`, r.tables.PrayerRequests)

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("increment prayer count: %w", err)
	}

	return nil
}

// ListUnscanned retrieves prayer requests updated since the cutoff whose
// last scan predates their last update
func (r *PostgresPrayerRequestRepository) ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.PrayerRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE updated_at >= $1
		  AND (last_scanned_at IS NULL OR last_scanned_at < updated_at)
		ORDER BY updated_at ASC
	`, prayerRequestColumns, r.tables.PrayerRequests)

	rows, err := r.pool.Query(ctx, query, updatedSince)
	if err != nil {
		return nil, fmt.Errorf("list unscanned prayer requests: %w", err)
	}
	defer rows.Close()

	requests := []models.PrayerRequest{}
	for rows.Next() {
		request, err := scanPrayerRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prayer request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unscanned prayer requests: %w", err)
	}

	return requests, nil
}

// UpdateLastScanned records a completed moderation scan
func (r *PostgresPrayerRequestRepository) UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET last_scanned_at = $1 WHERE id = $2`, r.tables.PrayerRequests)

	if _, err := r.pool.Exec(ctx, query, scannedAt, id); err != nil {
		return fmt.Errorf("update prayer request last scanned: %w", err)
	}

	return nil
}
