package services

import (
	"math"
	"strconv"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

// AggregationService computes read-side summaries over the social
// collections. Results are derived per call and never persisted.
type AggregationService struct {
	ratingRepo  repositories.RatingRepository
	commentRepo repositories.CommentRepository
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(ratingRepo repositories.RatingRepository, commentRepo repositories.CommentRepository) *AggregationService {
	return &AggregationService{ratingRepo: ratingRepo, commentRepo: commentRepo}
}

// RatingSummary returns the arithmetic mean (rounded to one decimal) and
// count of an offer's ratings. Malformed score values are excluded from both
// numerator and denominator. No ratings yields (0, 0).
func (s *AggregationService) RatingSummary(offerID string) (float64, int, error) {
	ratings, err := s.ratingRepo.ByOffer(offerID)
	if err != nil {
		return 0, 0, err
	}
	sum, count := 0, 0
	for _, r := range ratings {
		score, err := strconv.Atoi(r.Score)
		if err != nil {
			continue
		}
		sum += score
		count++
	}
	if count == 0 {
		return 0, 0, nil
	}
	mean := math.Round(float64(sum)/float64(count)*10) / 10
	return mean, count, nil
}

// RecentComments returns the last limit comments for an offer in original
// insertion order; insertion order is the recency order by construction.
func (s *AggregationService) RecentComments(offerID string, limit int) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ByOffer(offerID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(comments) > limit {
		comments = comments[len(comments)-limit:]
	}
	return comments, nil
}
