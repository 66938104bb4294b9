package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
)

// PostgresBibleStudyRepository implements the BibleStudyRepository interface
type PostgresBibleStudyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBibleStudyRepository creates a new bible study repository
func NewBibleStudyRepository(config *RepositoryConfig) repositories.BibleStudyRepository {
	return &PostgresBibleStudyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const bibleStudyColumns = `id, title, description, content, bible_verses, status, author_id, church_id, is_ai_generated, ai_explanations, view_count, created_at, updated_at`

func scanBibleStudy(row interface{ Scan(...any) error }) (*models.BibleStudy, error) {
	var study models.BibleStudy
	err := row.Scan(
		&study.ID,
		&study.Title,
		&study.Description,
		&study.Content,
		&study.BibleVerses,
		&study.Status,
		&study.AuthorID,
		&study.ChurchID,
		&study.IsAIGenerated,
		&study.AIExplanations,
		&study.ViewCount,
		&study.CreatedAt,
		&study.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &study, nil
}

// Create creates a new bible study
func (r *PostgresBibleStudyRepository) Create(ctx context.Context, study *models.BibleStudy) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.BibleStudies, bibleStudyColumns)

	_, err := r.pool.Exec(ctx, query,
		study.ID,
		study.Title,
		study.Description,
		study.Content,
		study.BibleVerses,
		study.Status,
		study.AuthorID,
		study.ChurchID,
		study.IsAIGenerated,
		study.AIExplanations,
		study.ViewCount,
		study.CreatedAt,
		study.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("church %s: %w", study.ChurchID, domain.ErrNotFound)
		}
		return fmt.Errorf("create bible study: %w", err)
	}

	return nil
}

// GetByID retrieves a bible study by ID
func (r *PostgresBibleStudyRepository) GetByID(ctx context.Context, id string) (*models.BibleStudy, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, bibleStudyColumns, r.tables.BibleStudies)

	study, err := scanBibleStudy(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("bible study %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get bible study: %w", err)
	}

	return study, nil
}

// ListByChurch retrieves a church's bible studies, newest first
func (r *PostgresBibleStudyRepository) ListByChurch(ctx context.Context, churchID string, status models.BibleStudyStatus) ([]models.BibleStudy, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE church_id = $1`, bibleStudyColumns, r.tables.BibleStudies)
	args := []any{churchID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bible studies: %w", err)
	}
	defer rows.Close()

	studies := []models.BibleStudy{}
	for rows.Next() {
		study, err := scanBibleStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bible study: %w", err)
		}
		studies = append(studies, *study)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bible studies: %w", err)
	}

	return studies, nil
}

// Update updates a bible study's mutable fields
func (r *PostgresBibleStudyRepository) Update(ctx context.Context, study *models.BibleStudy) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, content = $3, bible_verses = $4,
		    status = $5, is_ai_generated = $6, ai_explanations = $7, updated_at = $8
		WHERE id = $9
	`, r.tables.BibleStudies)

	tag, err := r.pool.Exec(ctx, query,
		study.Title,
		study.Description,
		study.Content,
		study.BibleVerses,
		study.Status,
		study.IsAIGenerated,
		study.AIExplanations,
		study.UpdatedAt,
		study.ID,
	)

	if err != nil {
		return fmt.Errorf("update bible study: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bible study %s: %w", study.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a bible study
func (r *PostgresBibleStudyRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.BibleStudies)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete bible study: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bible study %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementViewCount bumps the view counter without touching updated_at
func (r *PostgresBibleStudyRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET view_count = view_count + 1 WHERE id = $1`, r.tables.BibleStudies)

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}

	return nil
}
