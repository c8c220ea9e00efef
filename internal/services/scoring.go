package services

import (
	"fmt"
	"math"

	"github.com/screenrate/screenrate-backend/internal/types"
)

// ScoreConfig names the tuned constants of the match model. Defaults preserve
// the production values; callers may override individual knobs.
type ScoreConfig struct {
	// GenreWeight caps the genre component. A favorite genre contributes
	// count/totalReviews of this weight.
	GenreWeight float64
	// RatingWeight caps the rating-alignment component, which loses
	// RatingDecay points per point of distance from the user's average.
	RatingWeight float64
	RatingDecay  float64
	// RatingReasonFloor is the minimum rating component that earns a reason.
	RatingReasonFloor float64
	// AspectPoints are granted per matching aspect (|candidate - user| <
	// AspectTolerance), cumulative capped at AspectCap.
	AspectPoints    float64
	AspectCap       float64
	AspectTolerance float64
	// EmotionBonus is granted flat when the candidate's emotional cloud holds
	// the user's top dominant emotion above EmotionThreshold.
	EmotionBonus     float64
	EmotionThreshold float64
	// ColdStartMinRating filters the non-personalized fallback pool.
	ColdStartMinRating float64
	// OverfetchFactor multiplies the requested limit when pulling warm-path
	// candidates so the scorer has room to re-rank.
	OverfetchFactor int
	// DefaultLimit replaces non-positive limits.
	DefaultLimit int
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		GenreWeight:        40,
		RatingWeight:       20,
		RatingDecay:        5,
		RatingReasonFloor:  10,
		AspectPoints:       6,
		AspectCap:          30,
		AspectTolerance:    2,
		EmotionBonus:       10,
		EmotionThreshold:   30,
		ColdStartMinRating: 7,
		OverfetchFactor:    3,
		DefaultLimit:       10,
	}
}

// scoreCandidate computes the 0-100 match score of one catalog candidate
// against a taste profile, with reasons in fixed component order
// (genre, rating, aspects, emotion). The four components are independent:
// a malformed perception map or emotional cloud zeroes only its own component.
func scoreCandidate(cfg ScoreConfig, profile types.TasteProfile, candidate *types.Content) (int, []string) {
	var score float64
	reasons := []string{}

	// Genre affinity, saturating at GenreWeight.
	if profile.TotalReviews > 0 {
		for _, fav := range profile.FavoriteGenres {
			if fav.Genre != candidate.Genre {
				continue
			}
			genreScore := math.Min(float64(fav.Count)/float64(profile.TotalReviews)*cfg.GenreWeight, cfg.GenreWeight)
			if genreScore > 0 {
				score += genreScore
				reasons = append(reasons, fmt.Sprintf("your favorite genre: %s", candidate.Genre))
			}
			break
		}
	}

	// Rating alignment, linear decay to zero.
	ratingDiff := math.Abs(candidate.AvgRating - profile.RatingTendency.Average)
	ratingScore := math.Max(cfg.RatingWeight-ratingDiff*cfg.RatingDecay, 0)
	score += ratingScore
	if ratingScore > cfg.RatingReasonFloor {
		reasons = append(reasons, fmt.Sprintf("rating matches your preferences (%.1f)", candidate.AvgRating))
	}

	// Aspect closeness, AspectPoints per match, capped.
	perception := types.DecodeNumericMap(candidate.PerceptionMap)
	if len(perception) > 0 && len(profile.FavoriteAspects) > 0 {
		aspectScore := 0.0
		matchingAspects := 0
		for aspect, userAvg := range profile.FavoriteAspects {
			val, ok := perception[aspect]
			if ok && math.Abs(val-userAvg) < cfg.AspectTolerance {
				aspectScore += cfg.AspectPoints
				matchingAspects++
			}
		}
		score += math.Min(aspectScore, cfg.AspectCap)
		if matchingAspects > 0 {
			reasons = append(reasons, fmt.Sprintf("matches %d of your favorite aspects", matchingAspects))
		}
	}

	// Top dominant emotion present above threshold.
	if len(profile.DominantEmotions) > 0 {
		cloud := types.DecodeNumericMap(candidate.EmotionalCloud)
		topEmotion := profile.DominantEmotions[0].Emotion
		if intensity, ok := cloud[topEmotion]; ok && intensity > cfg.EmotionThreshold {
			score += cfg.EmotionBonus
			reasons = append(reasons, fmt.Sprintf("evokes %s", topEmotion))
		}
	}

	final := int(math.Round(score))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return final, reasons
}
