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

// PostgresSermonRepository implements the SermonRepository interface
type PostgresSermonRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSermonRepository creates a new sermon repository
func NewSermonRepository(config *RepositoryConfig) repositories.SermonRepository {
	return &PostgresSermonRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const sermonColumns = `id, title, description, content, bible_verses, theme, status, author_id, church_id, is_ai_generated, ai_prompt, audio_url, audio_duration, last_scanned_at, created_at, updated_at`

func scanSermon(row interface{ Scan(...any) error }) (*models.Sermon, error) {
	var sermon models.Sermon
	err := row.Scan(
		&sermon.ID,
		&sermon.Title,
		&sermon.Description,
		&sermon.Content,
		&sermon.BibleVerses,
		&sermon.Theme,
		&sermon.Status,
		&sermon.AuthorID,
		&sermon.ChurchID,
		&sermon.IsAIGenerated,
		&sermon.AIPrompt,
		&sermon.AudioURL,
		&sermon.AudioDuration,
		&sermon.LastScannedAt,
		&sermon.CreatedAt,
		&sermon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sermon, nil
}

// Create creates a new sermon
func (r *PostgresSermonRepository) Create(ctx context.Context, sermon *models.Sermon) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.tables.Sermons, sermonColumns)

	_, err := r.pool.Exec(ctx, query,
		sermon.ID,
		sermon.Title,
		sermon.Description,
		sermon.Content,
		sermon.BibleVerses,
		sermon.Theme,
		sermon.Status,
		sermon.AuthorID,
		sermon.ChurchID,
		sermon.IsAIGenerated,
		sermon.AIPrompt,
		sermon.AudioURL,
		sermon.AudioDuration,
		sermon.LastScannedAt,
		sermon.CreatedAt,
		sermon.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("church %s: %w", sermon.ChurchID, domain.ErrNotFound)
		}
		return fmt.Errorf("create sermon: %w", err)
	}

	return nil
}

// GetByID retrieves a sermon by ID
func (r *PostgresSermonRepository) GetByID(ctx context.Context, id string) (*models.Sermon, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, sermonColumns, r.tables.Sermons)

	sermon, err := scanSermon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("sermon %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sermon: %w", err)
	}

	return sermon, nil
}

// ListByChurch retrieves a church's sermons, newest first
func (r *PostgresSermonRepository) ListByChurch(ctx context.Context, churchID string, status models.SermonStatus) ([]models.Sermon, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE church_id = $1`, sermonColumns, r.tables.Sermons)
	args := []any{churchID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sermons: %w", err)
	}
	defer rows.Close()

	sermons := []models.Sermon{}
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sermon: %w", err)
		}
		sermons = append(sermons, *sermon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sermons: %w", err)
	}

	return sermons, nil
}

// Update updates a sermon's mutable fields
func (r *PostgresSermonRepository) Update(ctx context.Context, sermon *models.Sermon) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, content = $3, bible_verses = $4,
		    theme = $5, status = $6, is_ai_generated = $7, ai_prompt = $8,
		    audio_url = $9, audio_duration = $10, updated_at = $11
		WHERE id = $12
	`, r.tables.Sermons)

	tag, err := r.pool.Exec(ctx, query,
		sermon.Title,
		sermon.Description,
		sermon.Content,
		sermon.BibleVerses,
		sermon.Theme,
		sermon.Status,
		sermon.IsAIGenerated,
		sermon.AIPrompt,
		sermon.AudioURL,
		sermon.AudioDuration,
		sermon.UpdatedAt,
		sermon.ID,
	)

	if err != nil {
		return fmt.Errorf("update sermon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sermon %s: %w", sermon.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a sermon
func (r *PostgresSermonRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Sermons)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete sermon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sermon %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListUnscanned retrieves sermons updated since the cutoff whose last scan
// predates their last update
func (r *PostgresSermonRepository) ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.Sermon, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE updated_at >= $1
		  AND (last_scanned_at IS NULL OR last_scanned_at < updated_at)
		ORDER BY updated_at ASC
	`, sermonColumns, r.tables.Sermons)

	rows, err := r.pool.Query(ctx, query, updatedSince)
	if err != nil {
		return nil, fmt.Errorf("list unscanned sermons: %w", err)
	}
	defer rows.Close()

	sermons := []models.Sermon{}
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sermon: %w", err)
		}
		sermons = append(sermons, *sermon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unscanned sermons: %w", err)
	}

	return sermons, nil
}

// UpdateLastScanned records a completed moderation scan
func (r *PostgresSermonRepository) UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET last_scanned_at = $1 WHERE id = $2`, r.tables.Sermons)

	if _, err := r.pool.Exec(ctx, query, scannedAt, id); err != nil {
		return fmt.Errorf("update sermon last scanned: %w", err)
	}

	return nil
}
