package service

import (
	"context"
	"errors"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
)

var ErrInvalidRating = errors.New("оценка должна быть целым числом от 1 до 5")

// RatingSummary - свежий агрегат после записи оценки
type RatingSummary struct {
	NewAverage  float64 `json:"newAverage"`
	RatingCount int     `json:"ratingCount"`
}

type ReviewService interface {
	Rate(ctx context.Context, bookID, userID int64, rating int) (*RatingSummary, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// Rate upserts the user's rating and returns the post-update aggregate of the
// book, read back after the write.
func (s *reviewService) Rate(ctx context.Context, bookID, userID int64, rating int) (*RatingSummary, error) {
	if bookID <= 0 || rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &models.Review{
		BookID: bookID,
		UserID: userID,
		Rating: rating,
	}

	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, err
	}

	avgRating, ratingCount, err := s.reviewRepo.AggregateForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &RatingSummary{
		NewAverage:  avgRating,
		RatingCount: ratingCount,
	}, nil
}
