package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"borrowbee/internal/models"
)

type BorrowRepositoryImpl struct {
	db *sqlx.DB
}

func NewBorrowRepository(db *sqlx.DB) *BorrowRepositoryImpl {
	return &BorrowRepositoryImpl{db: db}
}

// Create inserts a pending request. The partial unique index on
// (book_id, user_id) for active statuses makes the insert conditional: a
// concurrent duplicate loses with a unique violation and is reported as
// ErrDuplicateRequest, so at most one active request per pair can ever exist.
func (r *BorrowRepositoryImpl) Create(ctx context.Context, req *models.BorrowRequest) error {
	query := `
		INSERT INTO borrow_requests (book_id, user_id, message, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, req.BookID, req.UserID, req.Message).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("заявка на книгу %d уже есть: %w", req.BookID, ErrDuplicateRequest)
		}
		return fmt.Errorf("ошибка при создании заявки: %w", err)
	}

	req.Status = models.StatusPending
	return nil
}

// ActiveStatus returns the status of the pending or approved request for the
// pair, or an empty string when there is none.
func (r *BorrowRepositoryImpl) ActiveStatus(ctx context.Context, bookID, userID int64) (string, error) {
	query := `
		SELECT status FROM borrow_requests
		WHERE book_id = $1 AND user_id = $2
		AND status IN ('pending', 'approved')
	`

	var status string
	err := r.db.GetContext(ctx, &status, query, bookID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ошибка при поиске активной заявки: %w", err)
	}

	return status, nil
}

// UpdateStatus performs the owner transition in one conditional statement:
// only the book owner, only from pending. Zero rows means the request does not
// exist, is not pending anymore, or belongs to someone else's book.
func (r *BorrowRepositoryImpl) UpdateStatus(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error) {
	query := `
		UPDATE borrow_requests br
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		FROM books b, users u
		WHERE br.id = $2
		AND b.id = br.book_id
		AND b.user_id = $3
		AND u.id = br.user_id
		AND br.status = 'pending'
		RETURNING br.id, br.book_id, br.user_id, br.message, br.status, br.created_at, br.updated_at,
			b.title AS book_title, b.author AS book_author,
			u.username AS requester_username, u.email AS requester_email
	`

	var view models.BorrowRequestView
	err := r.db.GetContext(ctx, &view, query, newStatus, requestID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("заявка не найдена или уже обработана: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при изменении статуса заявки: %w", err)
	}

	return &view, nil
}

func (r *BorrowRepositoryImpl) GetByRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error) {
	query := `
		SELECT br.id, br.book_id, br.user_id, br.message, br.status, br.created_at, br.updated_at,
			b.title AS book_title, b.author AS book_author,
			u.username AS requester_username, u.email AS requester_email
		FROM borrow_requests br
		JOIN books b ON b.id = br.book_id
		JOIN users u ON u.id = br.user_id
		WHERE br.user_id = $1
		ORDER BY br.created_at DESC
	`

	var requests []models.BorrowRequestView
	err := r.db.SelectContext(ctx, &requests, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении заявок пользователя: %w", err)
	}

	return requests, nil
}

func (r *BorrowRepositoryImpl) GetByOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error) {
	query := `
		SELECT br.id, br.book_id, br.user_id, br.message, br.status, br.created_at, br.updated_at,
			b.title AS book_title, b.author AS book_author,
			u.username AS requester_username, u.email AS requester_email
		FROM borrow_requests br
		JOIN books b ON b.id = br.book_id
		JOIN users u ON u.id = br.user_id
		WHERE b.user_id = $1
		ORDER BY br.created_at DESC
	`

	var requests []models.BorrowRequestView
	err := r.db.SelectContext(ctx, &requests, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении входящих заявок: %w", err)
	}

	return requests, nil
}
