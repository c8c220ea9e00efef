package services

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

// fakeReviewRepo returns canned aggregates. Setting failAggregates makes every
// aggregate query fail while the CRUD surface keeps working.
type fakeReviewRepo struct {
	genreStats     []repos.GenreStat
	typeStats      []repos.TypeStat
	aspectRows     []datatypes.JSON
	emotionRows    []datatypes.JSON
	ratingStats    repos.RatingStats
	failAggregates bool
}

var errAggregate = fmt.Errorf("aggregate query failed")

func (f *fakeReviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	return nil
}
func (f *fakeReviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (*types.Review, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeReviewRepo) GetByUserAndContent(ctx context.Context, tx *gorm.DB, userID, contentID uuid.UUID) (*types.Review, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeReviewRepo) ListByContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	return nil, nil
}
func (f *fakeReviewRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	return nil, nil
}
func (f *fakeReviewRepo) Update(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	return nil
}
func (f *fakeReviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) error {
	return nil
}
func (f *fakeReviewRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	return int64(f.ratingStats.TotalReviews), nil
}
func (f *fakeReviewRepo) GenreStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]repos.GenreStat, error) {
	if f.failAggregates {
		return nil, errAggregate
	}
	if len(f.genreStats) > limit {
		return f.genreStats[:limit], nil
	}
	return f.genreStats, nil
}
func (f *fakeReviewRepo) TypeStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]repos.TypeStat, error) {
	if f.failAggregates {
		return nil, errAggregate
	}
	return f.typeStats, nil
}
func (f *fakeReviewRepo) AspectRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error) {
	if f.failAggregates {
		return nil, errAggregate
	}
	return f.aspectRows, nil
}
func (f *fakeReviewRepo) EmotionRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error) {
	if f.failAggregates {
		return nil, errAggregate
	}
	return f.emotionRows, nil
}
func (f *fakeReviewRepo) RatingStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (repos.RatingStats, error) {
	if f.failAggregates {
		return repos.RatingStats{}, errAggregate
	}
	return f.ratingStats, nil
}
func (f *fakeReviewRepo) LatestReviewAt(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*time.Time, error) {
	return nil, nil
}
func (f *fakeReviewRepo) DistinctGenres(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	return len(f.genreStats), nil
}
func (f *fakeReviewRepo) DistinctContentTypes(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	return len(f.typeStats), nil
}
func (f *fakeReviewRepo) DetailedReviewCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func newProfileService(repo repos.ReviewRepo) TasteProfileService {
	return NewTasteProfileService(logger.NewNop(), repo, nil)
}

func TestGetTasteProfile_BuildsAllAggregates(t *testing.T) {
	repo := &fakeReviewRepo{
		genreStats: []repos.GenreStat{
			{Genre: "Drama", Count: 5, AvgRating: 8.2},
			{Genre: "Horror", Count: 2, AvgRating: 6.5},
		},
		typeStats: []repos.TypeStat{
			{ContentType: types.ContentTypeMovie, Count: 6, AvgRating: 7.8},
		},
		aspectRows: []datatypes.JSON{
			datatypes.JSON(`{"acting": 8, "plot": 6}`),
			datatypes.JSON(`{"acting": 6}`),
		},
		emotionRows: []datatypes.JSON{
			datatypes.JSON(`{"joy": 80, "fear": 0}`),
			datatypes.JSON(`{"joy": 40, "sadness": 20}`),
		},
		ratingStats: repos.RatingStats{
			Average: 7.4, Min: 4, Max: 10,
			HarshCount: 1, BalancedCount: 3, GenerousCount: 3,
			TotalReviews: 7,
		},
	}
	svc := newProfileService(repo)
	profile := svc.GetTasteProfile(context.Background(), uuid.New())

	if profile.TotalReviews != 7 {
		t.Fatalf("expected 7 total reviews, got %d", profile.TotalReviews)
	}
	if len(profile.FavoriteGenres) != 2 || profile.FavoriteGenres[0].Genre != "Drama" {
		t.Fatalf("unexpected favorite genres: %+v", profile.FavoriteGenres)
	}
	if got := profile.FavoriteAspects["acting"]; got != 7 {
		t.Fatalf("expected acting average 7, got %v", got)
	}
	if got := profile.FavoriteAspects["plot"]; got != 6 {
		t.Fatalf("expected plot average 6, got %v", got)
	}
	// fear has intensity 0 and must be excluded.
	want := []types.EmotionAffinity{
		{Emotion: "joy", Intensity: 60, Count: 2},
		{Emotion: "sadness", Intensity: 20, Count: 1},
	}
	if !reflect.DeepEqual(profile.DominantEmotions, want) {
		t.Fatalf("unexpected dominant emotions: %+v", profile.DominantEmotions)
	}
	dist := profile.RatingTendency.Distribution
	if dist.Harsh != 14 || dist.Balanced != 43 || dist.Generous != 43 {
		t.Fatalf("unexpected distribution: %+v", dist)
	}
}

func TestGetTasteProfile_Deterministic(t *testing.T) {
	repo := &fakeReviewRepo{
		genreStats:  []repos.GenreStat{{Genre: "Drama", Count: 3, AvgRating: 8}},
		emotionRows: []datatypes.JSON{datatypes.JSON(`{"joy": 50, "awe": 50, "fear": 50}`)},
		ratingStats: repos.RatingStats{Average: 8, TotalReviews: 3, GenerousCount: 3},
	}
	svc := newProfileService(repo)
	userID := uuid.New()

	first := svc.GetTasteProfile(context.Background(), userID)
	for i := 0; i < 5; i++ {
		if next := svc.GetTasteProfile(context.Background(), userID); !reflect.DeepEqual(first, next) {
			t.Fatalf("profile not deterministic: %+v vs %+v", first, next)
		}
	}
	// Equal intensities tie-break on emotion name.
	if first.DominantEmotions[0].Emotion != "awe" || first.DominantEmotions[2].Emotion != "joy" {
		t.Fatalf("unexpected emotion order: %+v", first.DominantEmotions)
	}
}

func TestGetTasteProfile_CapsDominantEmotions(t *testing.T) {
	repo := &fakeReviewRepo{
		emotionRows: []datatypes.JSON{
			datatypes.JSON(`{"a": 90, "b": 80, "c": 70, "d": 60, "e": 50, "f": 40, "g": 30}`),
		},
		ratingStats: repos.RatingStats{Average: 7, TotalReviews: 1, BalancedCount: 1},
	}
	svc := newProfileService(repo)
	profile := svc.GetTasteProfile(context.Background(), uuid.New())
	if len(profile.DominantEmotions) != 5 {
		t.Fatalf("expected 5 dominant emotions, got %d", len(profile.DominantEmotions))
	}
	if profile.DominantEmotions[0].Emotion != "a" || profile.DominantEmotions[4].Emotion != "e" {
		t.Fatalf("unexpected emotion ranking: %+v", profile.DominantEmotions)
	}
}

func TestGetTasteProfile_SkipsMalformedRows(t *testing.T) {
	repo := &fakeReviewRepo{
		aspectRows: []datatypes.JSON{
			datatypes.JSON(`{"acting": 8}`),
			datatypes.JSON(`not json at all`),
			datatypes.JSON(`{"acting": "great"}`),
		},
		ratingStats: repos.RatingStats{Average: 8, TotalReviews: 3, GenerousCount: 3},
	}
	svc := newProfileService(repo)
	profile := svc.GetTasteProfile(context.Background(), uuid.New())
	if got := profile.FavoriteAspects["acting"]; got != 8 {
		t.Fatalf("expected only the valid row to count, got %v", got)
	}
}

func TestGetTasteProfile_DegradesToEmptyOnFailure(t *testing.T) {
	repo := &fakeReviewRepo{failAggregates: true}
	svc := newProfileService(repo)
	userID := uuid.New()
	profile := svc.GetTasteProfile(context.Background(), userID)

	want := types.EmptyTasteProfile(userID)
	if !reflect.DeepEqual(profile, want) {
		t.Fatalf("expected empty profile on aggregate failure, got %+v", profile)
	}
}
