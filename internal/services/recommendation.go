package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

// coldStartReason is the fixed reason attached to non-personalized fallback
// recommendations.
const coldStartReason = "popular, highly rated content"

// RecommendationService turns a taste profile into ranked, explainable
// recommendations. It is stateless and never returns an error: any data-layer
// fault degrades to an empty list.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) []types.Recommendation
}

type recommendationService struct {
	log         *logger.Logger
	profileSvc  TasteProfileService
	contentRepo repos.ContentRepo
	cfg         ScoreConfig
}

func NewRecommendationService(log *logger.Logger, profileSvc TasteProfileService, contentRepo repos.ContentRepo, cfg ScoreConfig) RecommendationService {
	return &recommendationService{
		log:         log.With("service", "RecommendationService"),
		profileSvc:  profileSvc,
		contentRepo: contentRepo,
		cfg:         cfg,
	}
}

func (rs *recommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) []types.Recommendation {
	if limit <= 0 {
		limit = rs.cfg.DefaultLimit
	}

	profile := rs.profileSvc.GetTasteProfile(ctx, userID)

	if profile.TotalReviews == 0 {
		return rs.coldStart(ctx, limit)
	}

	candidates := rs.selectCandidates(ctx, userID, profile, limit)

	recs := make([]types.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		score, reasons := scoreCandidate(rs.cfg, profile, candidate)
		recs = append(recs, recommendationFrom(candidate, score, reasons))
	}

	// Stable sort: equal scores keep the catalog ordering produced by the
	// candidate query.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// coldStart returns popular, highly rated content with a zero match score.
// The scorer is bypassed entirely.
func (rs *recommendationService) coldStart(ctx context.Context, limit int) []types.Recommendation {
	popular, err := rs.contentRepo.Popular(ctx, nil, rs.cfg.ColdStartMinRating, limit)
	if err != nil {
		rs.log.Warn("Popular content query failed, returning empty recommendations", "error", err)
		return []types.Recommendation{}
	}
	recs := make([]types.Recommendation, 0, len(popular))
	for _, candidate := range popular {
		recs = append(recs, recommendationFrom(candidate, 0, []string{coldStartReason}))
	}
	return recs
}

// selectCandidates over-fetches unseen content matching the profile's
// favorite genres (when any) and minimum-rating band, ordered by avg_rating
// then reviews_count, giving the scorer room to re-rank before truncation.
func (rs *recommendationService) selectCandidates(ctx context.Context, userID uuid.UUID, profile types.TasteProfile, limit int) []*types.Content {
	genres := make([]string, 0, len(profile.FavoriteGenres))
	for _, fav := range profile.FavoriteGenres {
		genres = append(genres, fav.Genre)
	}
	minRating := profile.RatingTendency.Average - 1

	candidates, err := rs.contentRepo.CandidatesForUser(ctx, nil, userID, genres, minRating, limit*rs.cfg.OverfetchFactor)
	if err != nil {
		rs.log.Warn("Candidate query failed, returning empty recommendations", "user_id", userID, "error", err)
		return nil
	}
	return candidates
}

func recommendationFrom(content *types.Content, score int, reasons []string) types.Recommendation {
	return types.Recommendation{
		ContentID:    content.ID,
		Title:        content.Title,
		ContentType:  content.ContentType,
		Genre:        content.Genre,
		AvgRating:    content.AvgRating,
		MatchScore:   score,
		MatchReasons: reasons,
		PosterURL:    content.PosterURL,
		ReleaseYear:  content.ReleaseYear,
	}
}
