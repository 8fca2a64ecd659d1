package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"borrowbee/internal/models"
)

type BookRepositoryImpl struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) *BookRepositoryImpl {
	return &BookRepositoryImpl{db: db}
}

func (r *BookRepositoryImpl) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books
		(title, author, description, category, cover_image, age_group, availability_period, availability_start_date, available, active, user_id, created_at, updated_at)
		VALUES
		(:title, :author, :description, :category, :cover_image, :age_group, :availability_period, :availability_start_date, :available, :active, :user_id, :created_at, :updated_at)
		RETURNING id
	`

	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	rows, err := r.db.NamedQueryContext(ctx, query, book)
	if err != nil {
		return fmt.Errorf("ошибка при создании книги: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&book.ID); err != nil {
			return fmt.Errorf("ошибка при чтении id книги: %w", err)
		}
	}

	return nil
}

func (r *BookRepositoryImpl) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	query := `SELECT * FROM books WHERE id = $1`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("книга с ID %d не найдена: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении книги: %w", err)
	}

	return &book, nil
}

func (r *BookRepositoryImpl) GetActiveByID(ctx context.Context, bookID int64) (*models.Book, error) {
	query := `SELECT * FROM books WHERE id = $1 AND active = TRUE`

	var book models.Book
	err := r.db.GetContext(ctx, &book, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("книга с ID %d не найдена: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении книги: %w", err)
	}

	return &book, nil
}

// GetOwnerContact returns the book joined with its owner's contact data.
// Only active books qualify, the available flag is deliberately not checked here.
func (r *BookRepositoryImpl) GetOwnerContact(ctx context.Context, bookID int64) (*models.BookOwner, error) {
	query := `
		SELECT b.id, b.title, b.user_id, u.username AS owner_username, u.email AS owner_email
		FROM books b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1 AND b.active = TRUE
	`

	var owner models.BookOwner
	err := r.db.GetContext(ctx, &owner, query, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("книга с ID %d не найдена: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении владельца книги: %w", err)
	}

	return &owner, nil
}

func (r *BookRepositoryImpl) GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.Book, error) {
	query := `
		SELECT * FROM books
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at DESC
	`

	var books []models.Book
	err := r.db.SelectContext(ctx, &books, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении книг пользователя: %w", err)
	}

	return books, nil
}

// FindCatalog returns active and available books matching the search text and
// category, newest first. The literal category "educational" is an alias for
// the science and guide categories.
func (r *BookRepositoryImpl) FindCatalog(ctx context.Context, search, category string) ([]models.Book, error) {
	query := `SELECT * FROM books WHERE active = TRUE AND available = TRUE`
	args := []interface{}{}

	if search != "" {
		pattern := "%" + search + "%"
		args = append(args, pattern)
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}

	if category != "" {
		if category == "educational" {
			query += " AND (category = 'science' OR category = 'guide')"
		} else {
			args = append(args, category)
			query += fmt.Sprintf(" AND category = $%d", len(args))
		}
	}

	query += " ORDER BY created_at DESC"

	var books []models.Book
	err := r.db.SelectContext(ctx, &books, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке каталога: %w", err)
	}

	return books, nil
}

func (r *BookRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category FROM books
		WHERE active = TRUE AND category <> ''
		ORDER BY category
	`

	var categories []string
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *BookRepositoryImpl) Update(ctx context.Context, book *models.Book, ownerID int64) error {
	query := `
		UPDATE books SET
			title = :title,
			author = :author,
			description = :description,
			category = :category,
			cover_image = :cover_image,
			age_group = :age_group,
			availability_period = :availability_period,
			availability_start_date = :availability_start_date,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	book.UserID = ownerID
	book.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении книги: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("книга не найдена или принадлежит другому пользователю: %w", ErrNotFound)
	}

	return nil
}

func (r *BookRepositoryImpl) SetAvailable(ctx context.Context, bookID int64, available bool) error {
	query := `UPDATE books SET available = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, available, bookID)
	if err != nil {
		return fmt.Errorf("ошибка при изменении доступности книги: %w", err)
	}

	return nil
}

func (r *BookRepositoryImpl) Reactivate(ctx context.Context, bookID, ownerID int64, startDate time.Time) error {
	query := `
		UPDATE books
		SET available = TRUE, availability_start_date = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, startDate, bookID, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка при реактивации книги: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("книга не найдена: %w", ErrNotFound)
	}

	return nil
}

// DeactivateCopies hides every copy of the same title/author owned by ownerID.
func (r *BookRepositoryImpl) DeactivateCopies(ctx context.Context, bookID, ownerID int64) (int64, error) {
	query := `
		UPDATE books
		SET available = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1
		AND (title, author) = (SELECT title, author FROM books WHERE id = $2 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query, ownerID, bookID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при снятии копий с публикации: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return 0, fmt.Errorf("книга не найдена: %w", ErrNotFound)
	}

	return rowsAffected, nil
}

func (r *BookRepositoryImpl) SetCoverImage(ctx context.Context, bookID, ownerID int64, coverURL string) error {
	query := `
		UPDATE books
		SET cover_image = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, coverURL, bookID, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении обложки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("книга не найдена или принадлежит другому пользователю: %w", ErrNotFound)
	}

	return nil
}

func (r *BookRepositoryImpl) Delete(ctx context.Context, bookID, ownerID int64) error {
	query := `DELETE FROM books WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, bookID, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении книги: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("книга не найдена: %w", ErrNotFound)
	}

	return nil
}
