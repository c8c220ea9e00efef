package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.User{}, &types.Content{}, &types.Review{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func ratingPtr(v float64) *float64 { return &v }

func seedContent(t *testing.T, db *gorm.DB, title, genre string, contentType types.ContentType, avgRating float64, reviewsCount int) *types.Content {
	t.Helper()
	content := &types.Content{
		ID:           uuid.New(),
		Title:        title,
		ContentType:  contentType,
		Genre:        genre,
		AvgRating:    avgRating,
		ReviewsCount: reviewsCount,
	}
	if err := db.Create(content).Error; err != nil {
		t.Fatalf("failed to seed content: %v", err)
	}
	return content
}

func seedReview(t *testing.T, db *gorm.DB, userID uuid.UUID, contentID uuid.UUID, rating *float64, aspects, emotions datatypes.JSON) *types.Review {
	t.Helper()
	review := &types.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: contentID,
		Body:      "seeded",
		Rating:    rating,
		Aspects:   aspects,
		Emotions:  emotions,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	return review
}

func TestReviewRepo_GenreStatsOrderingAndFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	drama1 := seedContent(t, db, "Drama One", "Drama", types.ContentTypeMovie, 8, 0)
	drama2 := seedContent(t, db, "Drama Two", "Drama", types.ContentTypeMovie, 7, 0)
	horror := seedContent(t, db, "Scary", "Horror", types.ContentTypeMovie, 6, 0)
	untagged := seedContent(t, db, "No Genre", "", types.ContentTypeMovie, 5, 0)

	seedReview(t, db, userID, drama1.ID, ratingPtr(9), nil, nil)
	seedReview(t, db, userID, drama2.ID, ratingPtr(7), nil, nil)
	seedReview(t, db, userID, horror.ID, ratingPtr(8), nil, nil)
	// Unrated and untagged reviews must not count.
	seedReview(t, db, userID, untagged.ID, ratingPtr(10), nil, nil)
	other := seedContent(t, db, "Other Drama", "Drama", types.ContentTypeMovie, 8, 0)
	seedReview(t, db, userID, other.ID, nil, nil, nil)

	stats, err := repo.GenreStats(ctx, nil, userID, 5)
	if err != nil {
		t.Fatalf("GenreStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 genres, got %d: %+v", len(stats), stats)
	}
	if stats[0].Genre != "Drama" || stats[0].Count != 2 {
		t.Fatalf("expected Drama x2 first, got %+v", stats[0])
	}
	if stats[1].Genre != "Horror" || stats[1].Count != 1 {
		t.Fatalf("expected Horror x1 second, got %+v", stats[1])
	}
}

func TestReviewRepo_RatingStatsBuckets(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	content := seedContent(t, db, "Anything", "Drama", types.ContentTypeMovie, 7, 0)

	for _, r := range []float64{3, 5, 7, 8, 9} {
		c := seedContent(t, db, "c"+uuid.NewString(), "Drama", types.ContentTypeMovie, r, 0)
		seedReview(t, db, userID, c.ID, ratingPtr(r), nil, nil)
	}
	seedReview(t, db, userID, content.ID, nil, nil, nil)

	stats, err := repo.RatingStats(ctx, nil, userID)
	if err != nil {
		t.Fatalf("RatingStats failed: %v", err)
	}
	if stats.TotalReviews != 5 {
		t.Fatalf("expected 5 rated reviews, got %d", stats.TotalReviews)
	}
	if stats.HarshCount != 1 || stats.BalancedCount != 2 || stats.GenerousCount != 2 {
		t.Fatalf("unexpected buckets: %+v", stats)
	}
	if stats.Min != 3 || stats.Max != 9 {
		t.Fatalf("unexpected min/max: %+v", stats)
	}
}

func TestReviewRepo_AspectRowsSkipNullColumns(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	withAspects := seedContent(t, db, "A", "Drama", types.ContentTypeMovie, 7, 0)
	without := seedContent(t, db, "B", "Drama", types.ContentTypeMovie, 7, 0)
	seedReview(t, db, userID, withAspects.ID, ratingPtr(8), datatypes.JSON(`{"acting": 8}`), nil)
	seedReview(t, db, userID, without.ID, ratingPtr(7), nil, nil)

	rows, err := repo.AspectRows(ctx, nil, userID)
	if err != nil {
		t.Fatalf("AspectRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 aspect row, got %d", len(rows))
	}
}

func TestReviewRepo_LatestReviewAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	latest, err := repo.LatestReviewAt(ctx, nil, userID)
	if err != nil || latest != nil {
		t.Fatalf("expected nil timestamp for no reviews, got %v err %v", latest, err)
	}

	content := seedContent(t, db, "A", "Drama", types.ContentTypeMovie, 7, 0)
	seedReview(t, db, userID, content.ID, ratingPtr(8), nil, nil)

	latest, err = repo.LatestReviewAt(ctx, nil, userID)
	if err != nil {
		t.Fatalf("LatestReviewAt failed: %v", err)
	}
	if latest == nil || time.Since(*latest) > time.Minute {
		t.Fatalf("unexpected latest timestamp: %v", latest)
	}
}

func TestContentRepo_CandidatesExcludeReviewed(t *testing.T) {
	db := newTestDB(t)
	contentRepo := NewContentRepo(db, logger.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	seen := seedContent(t, db, "Seen", "Drama", types.ContentTypeMovie, 9, 10)
	unseen := seedContent(t, db, "Unseen", "Drama", types.ContentTypeMovie, 8, 5)
	lowRated := seedContent(t, db, "Low", "Drama", types.ContentTypeMovie, 4, 2)
	offGenre := seedContent(t, db, "Off Genre", "Comedy", types.ContentTypeMovie, 9, 3)
	seedReview(t, db, userID, seen.ID, ratingPtr(9), nil, nil)
	_ = lowRated
	_ = offGenre

	candidates, err := contentRepo.CandidatesForUser(ctx, nil, userID, []string{"Drama"}, 6.5, 10)
	if err != nil {
		t.Fatalf("CandidatesForUser failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != unseen.ID {
		t.Fatalf("expected only the unseen drama, got %+v", candidates)
	}
}

func TestContentRepo_PopularOrdering(t *testing.T) {
	db := newTestDB(t)
	contentRepo := NewContentRepo(db, logger.NewNop())
	ctx := context.Background()

	seedContent(t, db, "Few Reviews", "Drama", types.ContentTypeMovie, 9.5, 2)
	seedContent(t, db, "Crowd Favorite", "Action", types.ContentTypeMovie, 8.0, 50)
	seedContent(t, db, "Below Cutoff", "Drama", types.ContentTypeMovie, 6.9, 100)

	popular, err := contentRepo.Popular(ctx, nil, 7, 10)
	if err != nil {
		t.Fatalf("Popular failed: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("expected 2 items above cutoff, got %d", len(popular))
	}
	if popular[0].Title != "Crowd Favorite" || popular[1].Title != "Few Reviews" {
		t.Fatalf("unexpected ordering: %s, %s", popular[0].Title, popular[1].Title)
	}
}

func TestContentRepo_RecalcAggregates(t *testing.T) {
	db := newTestDB(t)
	contentRepo := NewContentRepo(db, logger.NewNop())
	ctx := context.Background()

	critic := &types.User{ID: uuid.New(), Email: "c@example.com", Username: "critic", Password: "x", Role: types.UserRoleCritic, IsActive: true}
	viewer := &types.User{ID: uuid.New(), Email: "v@example.com", Username: "viewer", Password: "x", Role: types.UserRoleUser, IsActive: true}
	if err := db.Create(critic).Error; err != nil {
		t.Fatalf("failed to seed critic: %v", err)
	}
	if err := db.Create(viewer).Error; err != nil {
		t.Fatalf("failed to seed viewer: %v", err)
	}

	content := seedContent(t, db, "Reviewed", "Drama", types.ContentTypeMovie, 0, 0)
	seedReview(t, db, critic.ID, content.ID, ratingPtr(8), nil, nil)
	seedReview(t, db, viewer.ID, content.ID, ratingPtr(4), nil, nil)

	if err := contentRepo.RecalcAggregates(ctx, nil, content.ID); err != nil {
		t.Fatalf("RecalcAggregates failed: %v", err)
	}

	updated, err := contentRepo.GetByID(ctx, nil, content.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.AvgRating != 6 || updated.CriticsRating != 8 || updated.AudienceRating != 4 {
		t.Fatalf("unexpected aggregates: %+v", updated)
	}
	if updated.ReviewsCount != 2 || updated.PositiveReviews != 1 || updated.NegativeReviews != 1 {
		t.Fatalf("unexpected counters: %+v", updated)
	}
}
