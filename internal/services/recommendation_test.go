package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type fakeContentRepo struct {
	popular        []*types.Content
	candidates     []*types.Content
	popularCalls   int
	candidateCalls int
	failPopular    bool
	failCandidates bool

	lastGenres    []string
	lastMinRating float64
	lastLimit     int
}

func (f *fakeContentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.Content) error {
	return nil
}
func (f *fakeContentRepo) GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.Content, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeContentRepo) GetByTitleAndType(ctx context.Context, tx *gorm.DB, title string, contentType types.ContentType) (*types.Content, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeContentRepo) Update(ctx context.Context, tx *gorm.DB, content *types.Content) error {
	return nil
}
func (f *fakeContentRepo) Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	return nil
}
func (f *fakeContentRepo) Search(ctx context.Context, tx *gorm.DB, q repos.ContentSearch) ([]*types.Content, int64, error) {
	return nil, 0, nil
}
func (f *fakeContentRepo) Popular(ctx context.Context, tx *gorm.DB, minRating float64, limit int) ([]*types.Content, error) {
	f.popularCalls++
	if f.failPopular {
		return nil, fmt.Errorf("popular query failed")
	}
	if len(f.popular) > limit {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}
func (f *fakeContentRepo) CandidatesForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, genres []string, minAvgRating float64, limit int) ([]*types.Content, error) {
	f.candidateCalls++
	f.lastGenres = genres
	f.lastMinRating = minAvgRating
	f.lastLimit = limit
	if f.failCandidates {
		return nil, fmt.Errorf("candidate query failed")
	}
	return f.candidates, nil
}
func (f *fakeContentRepo) RecalcAggregates(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	return nil
}

type stubProfileService struct {
	profile types.TasteProfile
}

func (s *stubProfileService) GetTasteProfile(ctx context.Context, userID uuid.UUID) types.TasteProfile {
	s.profile.UserID = userID
	return s.profile
}

func newRecService(profile types.TasteProfile, contentRepo repos.ContentRepo) RecommendationService {
	return NewRecommendationService(logger.NewNop(), &stubProfileService{profile: profile}, contentRepo, DefaultScoreConfig())
}

func catalogItem(title, genre string, avgRating float64) *types.Content {
	return &types.Content{ID: uuid.New(), Title: title, ContentType: types.ContentTypeMovie, Genre: genre, AvgRating: avgRating}
}

func TestGetRecommendations_ColdStart(t *testing.T) {
	repo := &fakeContentRepo{
		popular: []*types.Content{
			catalogItem("Blockbuster", "Action", 8.7),
			catalogItem("Sleeper Hit", "Drama", 8.1),
		},
	}
	svc := newRecService(types.EmptyTasteProfile(uuid.Nil), repo)

	recs := svc.GetRecommendations(context.Background(), uuid.New(), 10)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.MatchScore != 0 {
			t.Fatalf("cold-start picks must carry a zero score, got %d", rec.MatchScore)
		}
		if len(rec.MatchReasons) != 1 || rec.MatchReasons[0] != coldStartReason {
			t.Fatalf("unexpected cold-start reasons: %v", rec.MatchReasons)
		}
	}
	if repo.candidateCalls != 0 {
		t.Fatalf("cold start must not query personalized candidates")
	}
}

func TestGetRecommendations_WarmPathQueryShape(t *testing.T) {
	profile := types.EmptyTasteProfile(uuid.Nil)
	profile.TotalReviews = 4
	profile.RatingTendency.Average = 7.5
	profile.FavoriteGenres = []types.GenreAffinity{
		{Genre: "Drama", Count: 3, AvgRating: 8},
		{Genre: "Horror", Count: 1, AvgRating: 6},
	}
	repo := &fakeContentRepo{}
	svc := newRecService(profile, repo)

	svc.GetRecommendations(context.Background(), uuid.New(), 5)
	if repo.candidateCalls != 1 || repo.popularCalls != 0 {
		t.Fatalf("warm path must hit the candidate query once")
	}
	if len(repo.lastGenres) != 2 || repo.lastGenres[0] != "Drama" {
		t.Fatalf("unexpected genre filter: %v", repo.lastGenres)
	}
	if repo.lastMinRating != 6.5 {
		t.Fatalf("expected min rating average-1 (6.5), got %v", repo.lastMinRating)
	}
	if repo.lastLimit != 15 {
		t.Fatalf("expected overfetch limit 15, got %d", repo.lastLimit)
	}
}

func TestGetRecommendations_RanksAndTruncates(t *testing.T) {
	profile := types.EmptyTasteProfile(uuid.Nil)
	profile.TotalReviews = 10
	profile.RatingTendency.Average = 7
	profile.FavoriteGenres = []types.GenreAffinity{{Genre: "Drama", Count: 5, AvgRating: 8}}

	// The non-Drama item aligns on rating only; the Drama items add the
	// genre component and must rank first.
	repo := &fakeContentRepo{
		candidates: []*types.Content{
			catalogItem("Ordinary", "Action", 7),
			catalogItem("Strong Match", "Drama", 7),
			catalogItem("Weak Match", "Drama", 10),
		},
	}
	svc := newRecService(profile, repo)

	recs := svc.GetRecommendations(context.Background(), uuid.New(), 2)
	if len(recs) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(recs))
	}
	if recs[0].Title != "Strong Match" {
		t.Fatalf("expected Strong Match first, got %s", recs[0].Title)
	}
	if recs[1].Title != "Weak Match" {
		t.Fatalf("expected Weak Match second, got %s", recs[1].Title)
	}
}

func TestGetRecommendations_StableOrderOnTies(t *testing.T) {
	profile := types.EmptyTasteProfile(uuid.Nil)
	profile.TotalReviews = 10
	profile.RatingTendency.Average = 7

	repo := &fakeContentRepo{
		candidates: []*types.Content{
			catalogItem("First", "Action", 7),
			catalogItem("Second", "Comedy", 7),
			catalogItem("Third", "Horror", 7),
		},
	}
	svc := newRecService(profile, repo)

	recs := svc.GetRecommendations(context.Background(), uuid.New(), 10)
	for i, want := range []string{"First", "Second", "Third"} {
		if recs[i].Title != want {
			t.Fatalf("tie order not preserved: expected %s at %d, got %s", want, i, recs[i].Title)
		}
	}
}

func TestGetRecommendations_DefaultLimit(t *testing.T) {
	repo := &fakeContentRepo{}
	profile := types.EmptyTasteProfile(uuid.Nil)
	profile.TotalReviews = 1
	svc := newRecService(profile, repo)

	svc.GetRecommendations(context.Background(), uuid.New(), 0)
	if repo.lastLimit != DefaultScoreConfig().DefaultLimit*DefaultScoreConfig().OverfetchFactor {
		t.Fatalf("expected default limit with overfetch, got %d", repo.lastLimit)
	}
}

func TestGetRecommendations_EmptyOnRepoFailure(t *testing.T) {
	coldRepo := &fakeContentRepo{failPopular: true}
	coldSvc := newRecService(types.EmptyTasteProfile(uuid.Nil), coldRepo)
	if recs := coldSvc.GetRecommendations(context.Background(), uuid.New(), 5); recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil slice on popular failure, got %v", recs)
	}

	warmProfile := types.EmptyTasteProfile(uuid.Nil)
	warmProfile.TotalReviews = 3
	warmRepo := &fakeContentRepo{failCandidates: true}
	warmSvc := newRecService(warmProfile, warmRepo)
	if recs := warmSvc.GetRecommendations(context.Background(), uuid.New(), 5); len(recs) != 0 {
		t.Fatalf("expected empty recommendations on candidate failure, got %v", recs)
	}
}

func TestGetRecommendations_MalformedCandidateDataStillScores(t *testing.T) {
	profile := types.EmptyTasteProfile(uuid.Nil)
	profile.TotalReviews = 5
	profile.RatingTendency.Average = 7
	profile.FavoriteAspects = types.NumericMap{"acting": 8}

	broken := catalogItem("Broken Metadata", "Drama", 7)
	broken.PerceptionMap = datatypes.JSON(`{{{`)
	broken.EmotionalCloud = datatypes.JSON(`[1,2,3]`)

	repo := &fakeContentRepo{candidates: []*types.Content{broken}}
	svc := newRecService(profile, repo)

	recs := svc.GetRecommendations(context.Background(), uuid.New(), 5)
	if len(recs) != 1 {
		t.Fatalf("expected the candidate to survive malformed metadata, got %d", len(recs))
	}
	if recs[0].MatchScore != 20 {
		t.Fatalf("expected rating-only score 20, got %d", recs[0].MatchScore)
	}
}
