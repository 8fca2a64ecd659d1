package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func bookColumns() []string {
	return []string{
		"id", "title", "author", "description", "category", "cover_image",
		"age_group", "availability_period", "availability_start_date",
		"available", "active", "user_id", "created_at", "updated_at",
	}
}

func bookRow(rows *sqlmock.Rows, id int64, title, category string) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id, title, "Автор", "", category, "", "", "week", now, true, true, int64(7), now, now)
}

func TestFindCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Без фильтров", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		rows := sqlmock.NewRows(bookColumns())
		bookRow(rows, 1, "Анна Каренина", "fiction")
		bookRow(rows, 2, "Ревизор", "fiction")

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM books WHERE active = TRUE AND available = TRUE ORDER BY created_at DESC`,
		)).WillReturnRows(rows)

		books, err := repo.FindCatalog(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, books, 2)
		assert.Equal(t, "Анна Каренина", books[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Поиск по подстроке", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		rows := sqlmock.NewRows(bookColumns())
		bookRow(rows, 1, "Анна Каренина", "fiction")

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM books WHERE active = TRUE AND available = TRUE AND (title ILIKE $1 OR author ILIKE $1 OR description ILIKE $1) ORDER BY created_at DESC`,
		)).WithArgs("%каренина%").WillReturnRows(rows)

		books, err := repo.FindCatalog(ctx, "каренина", "")
		require.NoError(t, err)
		assert.Len(t, books, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Категория educational раскрывается в science и guide", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		rows := sqlmock.NewRows(bookColumns())
		bookRow(rows, 3, "Физика", "science")

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM books WHERE active = TRUE AND available = TRUE AND (category = 'science' OR category = 'guide') ORDER BY created_at DESC`,
		)).WillReturnRows(rows)

		books, err := repo.FindCatalog(ctx, "", "educational")
		require.NoError(t, err)
		assert.Len(t, books, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Обычная категория уходит параметром", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM books WHERE active = TRUE AND available = TRUE AND category = $1 ORDER BY created_at DESC`,
		)).WithArgs("fiction").WillReturnRows(sqlmock.NewRows(bookColumns()))

		books, err := repo.FindCatalog(ctx, "", "fiction")
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOwnerContact(t *testing.T) {
	ctx := context.Background()

	t.Run("Активная книга с владельцем", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		rows := sqlmock.NewRows([]string{"id", "title", "user_id", "owner_username", "owner_email"}).
			AddRow(int64(5), "Мертвые души", int64(7), "owner", "owner@example.com")

		mock.ExpectQuery(regexp.QuoteMeta("FROM books b")).
			WithArgs(int64(5)).WillReturnRows(rows)

		owner, err := repo.GetOwnerContact(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(7), owner.OwnerID)
		assert.Equal(t, "owner@example.com", owner.OwnerEmail)
	})

	t.Run("Неактивная книга не находится", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM books b")).
			WithArgs(int64(6)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "owner_username", "owner_email"}))

		_, err := repo.GetOwnerContact(ctx, 6)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSetAvailable(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE books SET available = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
	)).WithArgs(false, int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetAvailable(ctx, 4, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateCopies(t *testing.T) {
	ctx := context.Background()

	t.Run("Снимаются все копии владельца", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("SET available = FALSE")).
			WithArgs(int64(7), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 3))

		affected, err := repo.DeactivateCopies(ctx, 4, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)
	})

	t.Run("Чужая книга", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("SET available = FALSE")).
			WithArgs(int64(8), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.DeactivateCopies(ctx, 4, 8)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
