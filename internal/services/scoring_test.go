package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/screenrate/screenrate-backend/internal/types"
)

func baseProfile() types.TasteProfile {
	profile := types.EmptyTasteProfile(uuid.New())
	profile.TotalReviews = 10
	profile.RatingTendency.Average = 7.5
	return profile
}

func TestScoreCandidate_RatingDecay(t *testing.T) {
	cfg := DefaultScoreConfig()
	cases := []struct {
		diff float64
		want int
	}{
		{0, 20},
		{1, 15},
		{2, 10},
		{3, 5},
		{4, 0},
		{5, 0},
	}
	for _, tc := range cases {
		profile := baseProfile()
		candidate := &types.Content{Genre: "Horror", AvgRating: profile.RatingTendency.Average + tc.diff}
		got, _ := scoreCandidate(cfg, profile, candidate)
		if got != tc.want {
			t.Fatalf("diff=%v: expected score %d, got %d", tc.diff, tc.want, got)
		}
	}
}

func TestScoreCandidate_GenreComponentSaturates(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := baseProfile()
	profile.FavoriteGenres = []types.GenreAffinity{{Genre: "Drama", Count: 10, AvgRating: 8}}
	candidate := &types.Content{Genre: "Drama", AvgRating: profile.RatingTendency.Average}

	got, reasons := scoreCandidate(cfg, profile, candidate)
	// 40 from genre (count == total), 20 from perfect rating alignment.
	if got != 60 {
		t.Fatalf("expected score 60, got %d", got)
	}
	if len(reasons) != 2 || reasons[0] != "your favorite genre: Drama" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_AllComponents(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := baseProfile()
	profile.FavoriteGenres = []types.GenreAffinity{{Genre: "Drama", Count: 3, AvgRating: 8}}
	profile.FavoriteAspects = types.NumericMap{"acting": 8, "plot": 5}
	profile.DominantEmotions = []types.EmotionAffinity{{Emotion: "joy", Intensity: 50, Count: 4}}

	candidate := &types.Content{
		Genre:          "Drama",
		AvgRating:      8.0,
		PerceptionMap:  datatypes.JSON(`{"acting": 8.5, "plot": 9}`),
		EmotionalCloud: datatypes.JSON(`{"joy": 45}`),
	}

	got, reasons := scoreCandidate(cfg, profile, candidate)
	// genre 3/10*40 = 12, rating 20-0.5*5 = 17.5, one aspect within
	// tolerance = 6, emotion above threshold = 10. Round(45.5) = 46.
	if got != 46 {
		t.Fatalf("expected score 46, got %d", got)
	}
	want := []string{
		"your favorite genre: Drama",
		"rating matches your preferences (8.0)",
		"matches 1 of your favorite aspects",
		"evokes joy",
	}
	if fmt.Sprint(reasons) != fmt.Sprint(want) {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_MalformedPerceptionMapZeroesOnlyAspects(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := baseProfile()
	profile.FavoriteAspects = types.NumericMap{"acting": 8}
	candidate := &types.Content{
		Genre:         "Drama",
		AvgRating:     profile.RatingTendency.Average,
		PerceptionMap: datatypes.JSON(`not json`),
	}

	got, reasons := scoreCandidate(cfg, profile, candidate)
	if got != 20 {
		t.Fatalf("expected rating component only (20), got %d", got)
	}
	for _, r := range reasons {
		if r == "matches 1 of your favorite aspects" {
			t.Fatalf("aspect reason should not fire on malformed perception map")
		}
	}
}

func TestScoreCandidate_AspectCap(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := baseProfile()
	profile.FavoriteAspects = types.NumericMap{}
	perception := map[string]string{}
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("aspect%d", i)
		profile.FavoriteAspects[key] = 7
		perception[key] = "7"
	}
	raw := "{"
	for key := range perception {
		raw += fmt.Sprintf("%q: 7,", key)
	}
	raw = raw[:len(raw)-1] + "}"

	candidate := &types.Content{
		Genre:         "Horror",
		AvgRating:     profile.RatingTendency.Average - 10,
		PerceptionMap: datatypes.JSON(raw),
	}

	// 8 matches * 6 = 48 but the aspect component caps at 30. Rating is 0.
	got, _ := scoreCandidate(cfg, profile, candidate)
	if got != 30 {
		t.Fatalf("expected capped aspect score 30, got %d", got)
	}
}

func TestScoreCandidate_EmotionNeedsThreshold(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := baseProfile()
	profile.DominantEmotions = []types.EmotionAffinity{{Emotion: "fear", Intensity: 60, Count: 3}}

	at := &types.Content{Genre: "x", AvgRating: 0, EmotionalCloud: datatypes.JSON(`{"fear": 30}`)}
	above := &types.Content{Genre: "x", AvgRating: 0, EmotionalCloud: datatypes.JSON(`{"fear": 31}`)}

	atScore, _ := scoreCandidate(cfg, profile, at)
	aboveScore, _ := scoreCandidate(cfg, profile, above)
	if atScore != 0 {
		t.Fatalf("intensity exactly at threshold should not score, got %d", atScore)
	}
	if aboveScore != int(cfg.EmotionBonus) {
		t.Fatalf("expected emotion bonus %v, got %d", cfg.EmotionBonus, aboveScore)
	}
}

func TestScoreCandidate_ClampsToHundred(t *testing.T) {
	cfg := DefaultScoreConfig()
	cfg.GenreWeight = 150
	profile := baseProfile()
	profile.FavoriteGenres = []types.GenreAffinity{{Genre: "Drama", Count: 10, AvgRating: 9}}
	candidate := &types.Content{Genre: "Drama", AvgRating: profile.RatingTendency.Average}

	got, _ := scoreCandidate(cfg, profile, candidate)
	if got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestScoreCandidate_ZeroReviewsSkipsGenre(t *testing.T) {
	cfg := DefaultScoreConfig()
	profile := types.EmptyTasteProfile(uuid.New())
	profile.FavoriteGenres = []types.GenreAffinity{{Genre: "Drama", Count: 3, AvgRating: 8}}
	candidate := &types.Content{Genre: "Drama", AvgRating: 10}

	_, reasons := scoreCandidate(cfg, profile, candidate)
	for _, r := range reasons {
		if r == "your favorite genre: Drama" {
			t.Fatalf("genre reason must not fire with zero total reviews")
		}
	}
}
