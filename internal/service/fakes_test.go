package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"shepherd/internal/domain"
	"shepherd/internal/domain/models"
	"shepherd/internal/domain/repositories"
	"shepherd/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChurchRepo is an in-memory ChurchRepository.
type fakeChurchRepo struct {
	churches map[string]*models.Church
}

func newFakeChurchRepo(churches ...*models.Church) *fakeChurchRepo {
	r := &fakeChurchRepo{churches: map[string]*models.Church{}}
	for _, c := range churches {
		cc := *c
		r.churches[c.ID] = &cc
	}
	return r
}

func (r *fakeChurchRepo) Create(ctx context.Context, church *models.Church) error {
	cc := *church
	r.churches[church.ID] = &cc
	return nil
}

func (r *fakeChurchRepo) GetByID(ctx context.Context, id string) (*models.Church, error) {
	c, ok := r.churches[id]
	if !ok {
		return nil, fmt.Errorf("church %s: %w", id, domain.ErrNotFound)
	}
	cc := *c
	return &cc, nil
}

func (r *fakeChurchRepo) GetByName(ctx context.Context, name string) (*models.Church, error) {
	for _, c := range r.churches {
		if c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, fmt.Errorf("church '%s': %w", name, domain.ErrNotFound)
}

func (r *fakeChurchRepo) List(ctx context.Context) ([]models.Church, error) {
	out := []models.Church{}
	for _, c := range r.churches {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeChurchRepo) Update(ctx context.Context, church *models.Church) error {
	if _, ok := r.churches[church.ID]; !ok {
		return fmt.Errorf("church %s: %w", church.ID, domain.ErrNotFound)
	}
	cc := *church
	r.churches[church.ID] = &cc
	return nil
}

func (r *fakeChurchRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.churches[id]; !ok {
		return fmt.Errorf("church %s: %w", id, domain.ErrNotFound)
	}
	delete(r.churches, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		uu := *u
		r.users[u.ID] = &uu
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "email taken", ResourceType: "user"}
		}
	}
	uu := *user
	r.users[user.ID] = &uu
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	uu := *u
	return &uu, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			uu := *u
			return &uu, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByChurch(ctx context.Context, churchID string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		if u.ChurchID == churchID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	uu := *user
	r.users[user.ID] = &uu
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

// fakeSermonRepo is an in-memory SermonRepository.
type fakeSermonRepo struct {
	sermons map[string]*models.Sermon
}

func newFakeSermonRepo(sermons ...*models.Sermon) *fakeSermonRepo {
	r := &fakeSermonRepo{sermons: map[string]*models.Sermon{}}
	for _, s := range sermons {
		ss := *s
		r.sermons[s.ID] = &ss
	}
	return r
}

func (r *fakeSermonRepo) Create(ctx context.Context, sermon *models.Sermon) error {
	ss := *sermon
	r.sermons[sermon.ID] = &ss
	return nil
}

func (r *fakeSermonRepo) GetByID(ctx context.Context, id string) (*models.Sermon, error) {
	s, ok := r.sermons[id]
	if !ok {
		return nil, fmt.Errorf("sermon %s: %w", id, domain.ErrNotFound)
	}
	ss := *s
	return &ss, nil
}

func (r *fakeSermonRepo) ListByChurch(ctx context.Context, churchID string, status models.SermonStatus) ([]models.Sermon, error) {
	out := []models.Sermon{}
	for _, s := range r.sermons {
		if s.ChurchID == churchID && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSermonRepo) Update(ctx context.Context, sermon *models.Sermon) error {
	if _, ok := r.sermons[sermon.ID]; !ok {
		return fmt.Errorf("sermon %s: %w", sermon.ID, domain.ErrNotFound)
	}
	ss := *sermon
	r.sermons[sermon.ID] = &ss
	return nil
}

func (r *fakeSermonRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sermons[id]; !ok {
		return fmt.Errorf("sermon %s: %w", id, domain.ErrNotFound)
	}
	delete(r.sermons, id)
	return nil
}

func (r *fakeSermonRepo) ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.Sermon, error) {
	out := []models.Sermon{}
	for _, s := range r.sermons {
		if s.UpdatedAt.Before(updatedSince) {
			continue
		}
		if s.LastScannedAt == nil || s.LastScannedAt.Before(s.UpdatedAt) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSermonRepo) UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error {
	s, ok := r.sermons[id]
	if !ok {
		return fmt.Errorf("sermon %s: %w", id, domain.ErrNotFound)
	}
	t := scannedAt
	s.LastScannedAt = &t
	return nil
}

// fakePrayerRepo is an in-memory PrayerRequestRepository.
type fakePrayerRepo struct {
	requests map[string]*models.PrayerRequest
}

func newFakePrayerRepo(requests ...*models.PrayerRequest) *fakePrayerRepo {
	r := &fakePrayerRepo{requests: map[string]*models.PrayerRequest{}}
	for _, p := range requests {
		pp := *p
		r.requests[p.ID] = &pp
	}
	return r
}

func (r *fakePrayerRepo) Create(ctx context.Context, request *models.PrayerRequest) error {
	pp := *request
	r.requests[request.ID] = &pp
	return nil
}

func (r *fakePrayerRepo) GetByID(ctx context.Context, id string) (*models.PrayerRequest, error) {
	p, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
	}
	pp := *p
	return &pp, nil
}

func (r *fakePrayerRepo) ListByChurch(ctx context.Context, churchID string, status models.PrayerRequestStatus) ([]models.PrayerRequest, error) {
	out := []models.PrayerRequest{}
	for _, p := range r.requests {
		if p.ChurchID == churchID && (status == "" || p.Status == status) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePrayerRepo) Update(ctx context.Context, request *models.PrayerRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return fmt.Errorf("prayer request %s: %w", request.ID, domain.ErrNotFound)
	}
	pp := *request
	r.requests[request.ID] = &pp
	return nil
}

func (r *fakePrayerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
	}
	delete(r.requests, id)
	return nil
}

func (r *fakePrayerRepo) IncrementPrayerCount(ctx context.Context, id string) error {
	p, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
	}
	p.PrayerCount++
	return nil
}

func (r *fakePrayerRepo) ListUnscanned(ctx context.Context, updatedSince time.Time) ([]models.PrayerRequest, error) {
	out := []models.PrayerRequest{}
	for _, p := range r.requests {
		if p.UpdatedAt.Before(updatedSince) {
			continue
		}
		if p.LastScannedAt == nil || p.LastScannedAt.Before(p.UpdatedAt) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePrayerRepo) UpdateLastScanned(ctx context.Context, id string, scannedAt time.Time) error {
	p, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("prayer request %s: %w", id, domain.ErrNotFound)
	}
	t := scannedAt
	p.LastScannedAt = &t
	return nil
}

// fakeFlagRepo is an in-memory FlaggedContentRepository.
type fakeFlagRepo struct {
	flags map[string]*models.FlaggedContent
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{flags: map[string]*models.FlaggedContent{}}
}

func (r *fakeFlagRepo) Create(ctx context.Context, flag *models.FlaggedContent) error {
	ff := *flag
	r.flags[flag.ID] = &ff
	return nil
}

func (r *fakeFlagRepo) GetByID(ctx context.Context, id string) (*models.FlaggedContent, error) {
	f, ok := r.flags[id]
	if !ok {
		return nil, fmt.Errorf("flagged content %s: %w", id, domain.ErrNotFound)
	}
	ff := *f
	return &ff, nil
}

func (r *fakeFlagRepo) ListByChurch(ctx context.Context, churchID string, filter repositories.FlaggedContentFilter) ([]models.FlaggedContent, error) {
	out := []models.FlaggedContent{}
	for _, f := range r.flags {
		if f.ChurchID != churchID {
			continue
		}
		if filter.Resolved != nil && f.Resolved != *filter.Resolved {
			continue
		}
		if filter.Severity != "" && f.Severity != filter.Severity {
			continue
		}
		if filter.ContentType != "" && f.ContentType != filter.ContentType {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFlagRepo) Update(ctx context.Context, flag *models.FlaggedContent) error {
	if _, ok := r.flags[flag.ID]; !ok {
		return fmt.Errorf("flagged content %s: %w", flag.ID, domain.ErrNotFound)
	}
	ff := *flag
	r.flags[flag.ID] = &ff
	return nil
}

func (r *fakeFlagRepo) Stats(ctx context.Context, churchID string) (*repositories.ModerationStats, error) {
	stats := &repositories.ModerationStats{}
	for _, f := range r.flags {
		if f.ChurchID != churchID {
			continue
		}
		stats.Total++
		if !f.Resolved {
			stats.Unresolved++
		}
		switch f.Severity {
		case models.SeverityHigh:
			stats.High++
		case models.SeverityMedium:
			stats.Medium++
		case models.SeverityLow:
			stats.Low++
		}
	}
	return stats, nil
}

// fakeGenerator is a canned SermonGenerator.
type fakeGenerator struct {
	calls int
}

func (g *fakeGenerator) GenerateSermon(ctx context.Context, prompt *services.SermonPrompt) (*services.GeneratedSermon, error) {
	g.calls++
	return &services.GeneratedSermon{
		Title:   "On " + prompt.Theme,
		Content: "Generated sermon about " + prompt.Theme,
	}, nil
}

// fakeExplainer is a canned VerseExplainer.
type fakeExplainer struct{}

func (e *fakeExplainer) ExplainVerses(ctx context.Context, verses []string, opts *services.ExplanationOptions) (map[string]string, error) {
	out := map[string]string{}
	for _, v := range verses {
		out[v] = "Explanation of " + v
	}
	return out, nil
}

// fakeResponder is a canned PrayerResponder.
type fakeResponder struct{}

func (p *fakeResponder) RespondToPrayer(ctx context.Context, title, content string) (string, []string, error) {
	return "We are praying with you.", []string{"Psalm 23:1"}, nil
}

// fakeSynthesizer is a canned SpeechSynthesizer.
type fakeSynthesizer struct{}

func (s *fakeSynthesizer) Synthesize(ctx context.Context, text string, opts *services.TTSOptions) (*services.TTSResult, error) {
	return &services.TTSResult{
		AudioURL:        "/audio/tts_test.mp3",
		DurationSeconds: 60,
		WordCount:       150,
	}, nil
}

// passScanner never flags.
type passScanner struct{}

func (passScanner) Scan(ctx context.Context, content string) (*models.ModerationResult, error) {
	return &models.ModerationResult{Severity: models.SeverityNone}, nil
}

// blockScanner always flags at high severity.
type blockScanner struct{}

func (blockScanner) Scan(ctx context.Context, content string) (*models.ModerationResult, error) {
	return &models.ModerationResult{
		IsFlagged: true,
		Severity:  models.SeverityHigh,
		Score:     1,
	}, nil
}

// fakeStudyRepo is an in-memory BibleStudyRepository.
type fakeStudyRepo struct {
	studies map[string]*models.BibleStudy
}

func newFakeStudyRepo(studies ...*models.BibleStudy) *fakeStudyRepo {
	r := &fakeStudyRepo{studies: map[string]*models.BibleStudy{}}
	for _, s := range studies {
		ss := *s
		r.studies[s.ID] = &ss
	}
	return r
}

func (r *fakeStudyRepo) Create(ctx context.Context, study *models.BibleStudy) error {
	ss := *study
	r.studies[study.ID] = &ss
	return nil
}

func (r *fakeStudyRepo) GetByID(ctx context.Context, id string) (*models.BibleStudy, error) {
	s, ok := r.studies[id]
	if !ok {
		return nil, fmt.Errorf("bible study %s: %w", id, domain.ErrNotFound)
	}
	ss := *s
	return &ss, nil
}

func (r *fakeStudyRepo) ListByChurch(ctx context.Context, churchID string, status models.BibleStudyStatus) ([]models.BibleStudy, error) {
	out := []models.BibleStudy{}
	for _, s := range r.studies {
		if s.ChurchID == churchID && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeStudyRepo) Update(ctx context.Context, study *models.BibleStudy) error {
	if _, ok := r.studies[study.ID]; !ok {
		return fmt.Errorf("bible study %s: %w", study.ID, domain.ErrNotFound)
	}
	ss := *study
	r.studies[study.ID] = &ss
	return nil
}

func (r *fakeStudyRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.studies[id]; !ok {
		return fmt.Errorf("bible study %s: %w", id, domain.ErrNotFound)
	}
	delete(r.studies, id)
	return nil
}

func (r *fakeStudyRepo) IncrementViewCount(ctx context.Context, id string) error {
	s, ok := r.studies[id]
	if !ok {
		return fmt.Errorf("bible study %s: %w", id, domain.ErrNotFound)
	}
	s.ViewCount++
	return nil
}
