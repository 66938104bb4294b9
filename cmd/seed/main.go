package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"shepherd/internal/auth"
	"shepherd/internal/config"
	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/repository/postgres"
)

// Fixed IDs so reruns stay idempotent and the demo accounts are easy to
// find in the database.
const (
	seedChurchID = "11111111-1111-1111-1111-111111111111"
	seedPastorID = "22222222-2222-2222-2222-222222222201"
	seedMemberID = "22222222-2222-2222-2222-222222222202"
	seedAdminID  = "22222222-2222-2222-2222-222222222203"
	seedPassword = "password123"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	if err := seedDemoData(ctx, repoConfig); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("🎉 Seeding complete!")
	log.Printf("   Demo accounts (password %q):", seedPassword)
	log.Println("   admin@shepherd.app (admin), pastor@gracechapel.org (pastor), member@gracechapel.org (member)")
}

// seedDemoData creates a demo church with one account per role and a few
// sample resources. Conflicts on rerun are ignored, existing rows win.
func seedDemoData(ctx context.Context, repoConfig *postgres.RepositoryConfig) error {
	now := time.Now()

	churchRepo := postgres.NewChurchRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	sermonRepo := postgres.NewSermonRepository(repoConfig)
	studyRepo := postgres.NewBibleStudyRepository(repoConfig)
	prayerRepo := postgres.NewPrayerRequestRepository(repoConfig)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	church := &models.Church{
		ID:               seedChurchID,
		Name:             "Grace Chapel",
		Description:      "Demo congregation",
		City:             "Austin",
		State:            "TX",
		Country:          "USA",
		Email:            "office@gracechapel.org",
		SubscriptionPlan: models.PlanStandard,
		IsActive:         true,
		IsVerified:       true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := createIgnoringConflict(churchRepo.Create(ctx, church)); err != nil {
		return err
	}
	log.Printf("✅ Church: %s", church.Name)

	users := []*models.User{
		{
			ID:           seedAdminID,
			FirstName:    "Ada",
			LastName:     "Whitfield",
			Email:        "admin@shepherd.app",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			ChurchID:     seedChurchID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           seedPastorID,
			FirstName:    "James",
			LastName:     "Okafor",
			Email:        "pastor@gracechapel.org",
			PasswordHash: hash,
			Role:         models.RolePastor,
			ChurchID:     seedChurchID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           seedMemberID,
			FirstName:    "Maria",
			LastName:     "Santos",
			Email:        "member@gracechapel.org",
			PasswordHash: hash,
			Role:         models.RoleMember,
			ChurchID:     seedChurchID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, user := range users {
		if err := createIgnoringConflict(userRepo.Create(ctx, user)); err != nil {
			return err
		}
		log.Printf("✅ User: %s (%s)", user.Email, user.Role)
	}

	sermon := &models.Sermon{
		ID:          "33333333-3333-3333-3333-333333333301",
		Title:       "The Shepherd's Voice",
		Description: "On recognizing guidance in a noisy world",
		Content:     "My sheep hear my voice, and I know them, and they follow me...",
		BibleVerses: []string{"John 10:27", "Psalm 23:1-3"},
		Theme:       "Guidance",
		Status:      models.SermonPublished,
		AuthorID:    seedPastorID,
		ChurchID:    seedChurchID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := createIgnoringConflict(sermonRepo.Create(ctx, sermon)); err != nil {
		return err
	}
	log.Printf("✅ Sermon: %s", sermon.Title)

	study := &models.BibleStudy{
		ID:          "44444444-4444-4444-4444-444444444401",
		Title:       "Fruit of the Spirit",
		Description: "A five-week walk through Galatians 5",
		Content:     "Week one focuses on love as the root of every other fruit...",
		BibleVerses: []string{"Galatians 5:22-23"},
		Status:      models.BibleStudyPublished,
		AuthorID:    seedPastorID,
		ChurchID:    seedChurchID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := createIgnoringConflict(studyRepo.Create(ctx, study)); err != nil {
		return err
	}
	log.Printf("✅ Bible study: %s", study.Title)

	// One request per visibility level so the demo shows the filtering.
	prayers := []*models.PrayerRequest{
		{
			ID:         "55555555-5555-5555-5555-555555555501",
			Title:      "Healing for my mother",
			Content:    "Please pray for my mother's recovery after surgery.",
			Status:     models.PrayerOpen,
			Visibility: models.VisibilityPublic,
			UserID:     seedMemberID,
			ChurchID:   seedChurchID,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "55555555-5555-5555-5555-555555555502",
			Title:      "Job search",
			Content:    "Praying for direction as I look for new work.",
			Status:     models.PrayerOpen,
			Visibility: models.VisibilityPrivate,
			UserID:     seedMemberID,
			ChurchID:   seedChurchID,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "55555555-5555-5555-5555-555555555503",
			Title:      "Family struggle",
			Content:    "A sensitive situation at home I would like pastoral counsel on.",
			Status:     models.PrayerOpen,
			Visibility: models.VisibilityPastoral,
			UserID:     seedMemberID,
			ChurchID:   seedChurchID,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	for _, prayer := range prayers {
		if err := createIgnoringConflict(prayerRepo.Create(ctx, prayer)); err != nil {
			return err
		}
		log.Printf("✅ Prayer request: %s (%s)", prayer.Title, prayer.Visibility)
	}

	return nil
}

// createIgnoringConflict swallows duplicate-key errors so reruns do not
// fail on rows seeded earlier.
func createIgnoringConflict(err error) error {
	if err == nil || errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create churches table
	createChurches := `
		CREATE TABLE IF NOT EXISTS ` + tables.Churches + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			logo_url TEXT NOT NULL DEFAULT '',
			website_url TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			subscription_plan TEXT NOT NULL DEFAULT 'free',
			stripe_customer_id TEXT NOT NULL DEFAULT '',
			stripe_subscription_id TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createChurches); err != nil {
		return err
	}

	// Create users table
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			avatar_url TEXT NOT NULL DEFAULT '',
			church_id UUID NOT NULL REFERENCES ` + tables.Churches + `(id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	// Create sermons table
	createSermons := `
		CREATE TABLE IF NOT EXISTS ` + tables.Sermons + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			bible_verses TEXT[] NOT NULL DEFAULT '{}',
			theme TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			author_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			church_id UUID NOT NULL REFERENCES ` + tables.Churches + `(id) ON DELETE CASCADE,
			is_ai_generated BOOLEAN NOT NULL DEFAULT FALSE,
			ai_prompt JSONB,
			audio_url TEXT NOT NULL DEFAULT '',
			audio_duration INTEGER NOT NULL DEFAULT 0,
			last_scanned_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSermons); err != nil {
		return err
	}

	// Create bible_studies table
	createStudies := `
		CREATE TABLE IF NOT EXISTS ` + tables.BibleStudies + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			bible_verses TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'draft',
			author_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			church_id UUID NOT NULL REFERENCES ` + tables.Churches + `(id) ON DELETE CASCADE,
			is_ai_generated BOOLEAN NOT NULL DEFAULT FALSE,
			ai_explanations JSONB,
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createStudies); err != nil {
		return err
	}

	// Create prayer_requests table
	createPrayers := `
		CREATE TABLE IF NOT EXISTS ` + tables.PrayerRequests + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'open',
			visibility TEXT NOT NULL DEFAULT 'public',
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			church_id UUID NOT NULL REFERENCES ` + tables.Churches + `(id) ON DELETE CASCADE,
			related_bible_verses TEXT[] NOT NULL DEFAULT '{}',
			ai_response TEXT NOT NULL DEFAULT '',
			prayer_count INTEGER NOT NULL DEFAULT 0,
			last_scanned_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createPrayers); err != nil {
		return err
	}

	// Create flagged_contents table
	createFlags := `
		CREATE TABLE IF NOT EXISTS ` + tables.FlaggedContents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			content_type TEXT NOT NULL,
			content_id UUID NOT NULL,
			snippet TEXT NOT NULL DEFAULT '',
			is_flagged BOOLEAN NOT NULL DEFAULT TRUE,
			severity TEXT NOT NULL,
			categories TEXT[] NOT NULL DEFAULT '{}',
			reasons TEXT[] NOT NULL DEFAULT '{}',
			score DOUBLE PRECISION NOT NULL DEFAULT 0,
			church_id UUID NOT NULL REFERENCES ` + tables.Churches + `(id) ON DELETE CASCADE,
			reviewed_by UUID REFERENCES ` + tables.Users + `(id) ON DELETE SET NULL,
			reviewed_at TIMESTAMPTZ,
			review_notes TEXT NOT NULL DEFAULT '',
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			flagged_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFlags); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `users_church ON ` + tables.Users + `(church_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `sermons_church_status ON ` + tables.Sermons + `(church_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `bible_studies_church_status ON ` + tables.BibleStudies + `(church_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `prayer_requests_church_status ON ` + tables.PrayerRequests + `(church_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `flagged_contents_church ON ` + tables.FlaggedContents + `(church_id, resolved)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.FlaggedContents,
		tables.PrayerRequests,
		tables.BibleStudies,
		tables.Sermons,
		tables.Users,
		tables.Churches,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
