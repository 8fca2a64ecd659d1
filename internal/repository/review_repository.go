package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"borrowbee/internal/models"
)

type ReviewRepositoryImpl struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepositoryImpl {
	return &ReviewRepositoryImpl{db: db}
}

// Upsert writes the user's rating for a book. The reviews table carries a
// UNIQUE (book_id, user_id) constraint, so a repeated rating overwrites the
// previous one atomically instead of inserting a second row.
func (r *ReviewRepositoryImpl) Upsert(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (book_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, review.BookID, review.UserID, review.Rating, review.Comment).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении оценки: %w", err)
	}

	return nil
}

// AggregateForBook computes the mean rating and the rating count of a book.
// An empty review set yields (0, 0), not an error.
func (r *ReviewRepositoryImpl) AggregateForBook(ctx context.Context, bookID int64) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(rating) AS rating_count
		FROM reviews
		WHERE book_id = $1
	`

	var aggregate struct {
		AvgRating   float64 `db:"avg_rating"`
		RatingCount int     `db:"rating_count"`
	}

	err := r.db.GetContext(ctx, &aggregate, query, bookID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при агрегации оценок: %w", err)
	}

	return aggregate.AvgRating, aggregate.RatingCount, nil
}

func (r *ReviewRepositoryImpl) GetUserRating(ctx context.Context, bookID, userID int64) (int, error) {
	query := `SELECT rating FROM reviews WHERE book_id = $1 AND user_id = $2`

	var rating int
	err := r.db.GetContext(ctx, &rating, query, bookID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("ошибка при получении оценки пользователя: %w", err)
	}

	return rating, nil
}
