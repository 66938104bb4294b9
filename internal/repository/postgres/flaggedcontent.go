package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
)

// PostgresFlaggedContentRepository implements the FlaggedContentRepository interface
type PostgresFlaggedContentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFlaggedContentRepository creates a new flagged content repository
func NewFlaggedContentRepository(config *RepositoryConfig) repositories.FlaggedContentRepository {
	return &PostgresFlaggedContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const flaggedContentColumns = `id, content_type, content_id, snippet, is_flagged, severity, categories, reasons, score, church_id, reviewed_by, reviewed_at, review_notes, resolved, flagged_at, updated_at`

// categories are stored as text[]; pgx needs plain string slices for
// custom string types.
func categoryStrings(categories []models.FlagCategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func scanFlaggedContent(row interface{ Scan(...any) error }) (*models.FlaggedContent, error) {
	var flag models.FlaggedContent
	var categories []string
	err := row.Scan(
		&flag.ID,
		&flag.ContentType,
		&flag.ContentID,
		&flag.Snippet,
		&flag.IsFlagged,
		&flag.Severity,
		&categories,
		&flag.Reasons,
		&flag.Score,
		&flag.ChurchID,
		&flag.ReviewedBy,
		&flag.ReviewedAt,
		&flag.ReviewNotes,
		&flag.Resolved,
		&flag.FlaggedAt,
		&flag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	flag.Categories = make([]models.FlagCategory, len(categories))
	for i, c := range categories {
		flag.Categories[i] = models.FlagCategory(c)
	}
	return &flag, nil
}

// Create creates a new moderation record
func (r *PostgresFlaggedContentRepository) Create(ctx context.Context, flag *models.FlaggedContent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.tables.FlaggedContents, flaggedContentColumns)

	_, err := r.pool.Exec(ctx, query,
		flag.ID,
		flag.ContentType,
		flag.ContentID,
		flag.Snippet,
		flag.IsFlagged,
		flag.Severity,
		categoryStrings(flag.Categories),
		flag.Reasons,
		flag.Score,
		flag.ChurchID,
		flag.ReviewedBy,
		flag.ReviewedAt,
		flag.ReviewNotes,
		flag.Resolved,
		flag.FlaggedAt,
		flag.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create flagged content: %w", err)
	}

	return nil
}

// GetByID retrieves a moderation record by ID
func (r *PostgresFlaggedContentRepository) GetByID(ctx context.Context, id string) (*models.FlaggedContent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, flaggedContentColumns, r.tables.FlaggedContents)

	flag, err := scanFlaggedContent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("flagged content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get flagged content: %w", err)
	}

	return flag, nil
}

// ListByChurch retrieves a church's moderation records, newest first
func (r *PostgresFlaggedContentRepository) ListByChurch(ctx context.Context, churchID string, filter repositories.FlaggedContentFilter) ([]models.FlaggedContent, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE church_id = $1`, flaggedContentColumns, r.tables.FlaggedContents)
	args := []any{churchID}

	if filter.Resolved != nil {
		args = append(args, *filter.Resolved)
		query += fmt.Sprintf(` AND resolved = $%d`, len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		query += fmt.Sprintf(` AND severity = $%d`, len(args))
	}
	if filter.ContentType != "" {
		args = append(args, filter.ContentType)
		query += fmt.Sprintf(` AND content_type = $%d`, len(args))
	}
	query += ` ORDER BY flagged_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list flagged content: %w", err)
	}
	defer rows.Close()

	flags := []models.FlaggedContent{}
	for rows.Next() {
		flag, err := scanFlaggedContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flagged content: %w", err)
		}
		flags = append(flags, *flag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flagged content: %w", err)
	}

	return flags, nil
}

// Update records review fields on a moderation record
func (r *PostgresFlaggedContentRepository) Update(ctx context.Context, flag *models.FlaggedContent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET reviewed_by = $1, reviewed_at = $2, review_notes = $3,
		    resolved = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.FlaggedContents)

	tag, err := r.pool.Exec(ctx, query,
		flag.ReviewedBy,
		flag.ReviewedAt,
		flag.ReviewNotes,
		flag.Resolved,
		flag.UpdatedAt,
		flag.ID,
	)

	if err != nil {
		return fmt.Errorf("update flagged content: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flagged content %s: %w", flag.ID, domain.ErrNotFound)
	}

	return nil
}

// Stats summarizes a church's moderation queue
func (r *PostgresFlaggedContentRepository) Stats(ctx context.Context, churchID string) (*repositories.ModerationStats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT resolved),
			COUNT(*) FILTER (WHERE severity = 'HIGH'),
			COUNT(*) FILTER (WHERE severity = 'MEDIUM'),
			COUNT(*) FILTER (WHERE severity = 'LOW')
		FROM %s
		WHERE church_id = $1
	`, r.tables.FlaggedContents)

	var stats repositories.ModerationStats
	err := r.pool.QueryRow(ctx, query, churchID).Scan(
		&stats.Total,
		&stats.Unresolved,
		&stats.High,
		&stats.Medium,
		&stats.Low,
	)
	if err != nil {
		return nil, fmt.Errorf("moderation stats: %w", err)
	}

	return &stats, nil
}
