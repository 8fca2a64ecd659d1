package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"borrowbee/internal/models"
)

// Сигнальные ошибки для конфликтных и not-found состояний
var (
	ErrNotFound         = errors.New("запись не найдена")
	ErrDuplicateRequest = errors.New("активная заявка на эту книгу уже существует")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, bookID int64) (*models.Book, error)
	GetActiveByID(ctx context.Context, bookID int64) (*models.Book, error)
	GetOwnerContact(ctx context.Context, bookID int64) (*models.BookOwner, error)
	GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.Book, error)
	FindCatalog(ctx context.Context, search, category string) ([]models.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, book *models.Book, ownerID int64) error
	SetAvailable(ctx context.Context, bookID int64, available bool) error
	Reactivate(ctx context.Context, bookID, ownerID int64, startDate time.Time) error
	DeactivateCopies(ctx context.Context, bookID, ownerID int64) (int64, error)
	SetCoverImage(ctx context.Context, bookID, ownerID int64, coverURL string) error
	Delete(ctx context.Context, bookID, ownerID int64) error
}

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	AggregateForBook(ctx context.Context, bookID int64) (float64, int, error)
	GetUserRating(ctx context.Context, bookID, userID int64) (int, error)
}

type BorrowRepository interface {
	Create(ctx context.Context, req *models.BorrowRequest) error
	ActiveStatus(ctx context.Context, bookID, userID int64) (string, error)
	UpdateStatus(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error)
	GetByRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error)
}

type Repository struct {
	User   UserRepository
	Book   BookRepository
	Review ReviewRepository
	Borrow BorrowRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Book:   NewBookRepository(db),
		Review: NewReviewRepository(db),
		Borrow: NewBorrowRepository(db),
	}
}
