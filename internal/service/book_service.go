package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
	"borrowbee/internal/storage"
)

var ErrBookFieldsRequired = errors.New("название, автор и жанр обязательны")

type BookInput struct {
	Title              string `json:"title"`
	Author             string `json:"author"`
	Category           string `json:"category"`
	AgeGroup           string `json:"ageGroup"`
	Description        string `json:"description"`
	CoverImage         string `json:"coverImage"`
	AvailabilityPeriod string `json:"availabilityPeriod"`
}

// DashboardBook - книга владельца со статусом окна и агрегатом оценок
type DashboardBook struct {
	models.RatedBook
	Availability models.AvailabilityStatus `json:"availability"`
}

type BookService interface {
	AddBook(ctx context.Context, ownerID int64, input BookInput) (*models.Book, error)
	UpdateBook(ctx context.Context, bookID, ownerID int64, input BookInput) error
	ToggleAvailability(ctx context.Context, bookID, ownerID int64, makeAvailable bool) error
	DeleteBook(ctx context.Context, bookID, ownerID int64) error
	UserBooks(ctx context.Context, ownerID int64) ([]DashboardBook, error)
	UploadCover(ctx context.Context, bookID, ownerID int64, fileName string, file io.Reader, size int64) (string, error)
}

type bookService struct {
	bookRepo     repository.BookRepository
	reviewRepo   repository.ReviewRepository
	availability AvailabilityService
	storage      storage.Storage
}

func NewBookService(bookRepo repository.BookRepository, reviewRepo repository.ReviewRepository, availability AvailabilityService, storage storage.Storage) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		reviewRepo:   reviewRepo,
		availability: availability,
		storage:      storage,
	}
}

func normalizeInput(input *BookInput) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Category = strings.TrimSpace(input.Category)
	input.AgeGroup = strings.TrimSpace(input.AgeGroup)
	input.Description = strings.TrimSpace(input.Description)
	input.CoverImage = strings.TrimSpace(input.CoverImage)
	if input.AvailabilityPeriod == "" {
		input.AvailabilityPeriod = models.PeriodWeek
	}
}

func (s *bookService) AddBook(ctx context.Context, ownerID int64, input BookInput) (*models.Book, error) {
	normalizeInput(&input)
	if input.Title == "" || input.Author == "" || input.Category == "" {
		return nil, ErrBookFieldsRequired
	}

	now := time.Now().UTC()
	book := &models.Book{
		Title:                 input.Title,
		Author:                input.Author,
		Description:           input.Description,
		Category:              input.Category,
		CoverImage:            input.CoverImage,
		AgeGroup:              input.AgeGroup,
		AvailabilityPeriod:    input.AvailabilityPeriod,
		AvailabilityStartDate: &now,
		Available:             true,
		Active:                true,
		UserID:                ownerID,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// UpdateBook rewrites the owner's book from the form and restarts the
// availability window.
func (s *bookService) UpdateBook(ctx context.Context, bookID, ownerID int64, input BookInput) error {
	normalizeInput(&input)
	if input.Title == "" || input.Author == "" || input.Category == "" {
		return ErrBookFieldsRequired
	}

	now := time.Now().UTC()
	book := &models.Book{
		ID:                    bookID,
		Title:                 input.Title,
		Author:                input.Author,
		Description:           input.Description,
		Category:              input.Category,
		CoverImage:            input.CoverImage,
		AgeGroup:              input.AgeGroup,
		AvailabilityPeriod:    input.AvailabilityPeriod,
		AvailabilityStartDate: &now,
	}

	return s.bookRepo.Update(ctx, book, ownerID)
}

// ToggleAvailability reactivates one copy with a fresh window, or hides every
// same-title/author copy of the owner at once.
func (s *bookService) ToggleAvailability(ctx context.Context, bookID, ownerID int64, makeAvailable bool) error {
	if makeAvailable {
		return s.bookRepo.Reactivate(ctx, bookID, ownerID, time.Now().UTC())
	}

	_, err := s.bookRepo.DeactivateCopies(ctx, bookID, ownerID)
	return err
}

func (s *bookService) DeleteBook(ctx context.Context, bookID, ownerID int64) error {
	return s.bookRepo.Delete(ctx, bookID, ownerID)
}

// UserBooks lists the owner's active books with window status and ratings.
// A failure on a single book is logged and the book skipped.
func (s *bookService) UserBooks(ctx context.Context, ownerID int64) ([]DashboardBook, error) {
	books, err := s.bookRepo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dashboardBooks := make([]DashboardBook, 0, len(books))
	for i := range books {
		book := &books[i]

		availability, err := s.availability.CheckAvailability(ctx, book)
		if err != nil {
			log.Printf("Ошибка при обработке книги %d: %v", book.ID, err)
			continue
		}

		avgRating, ratingCount, err := s.reviewRepo.AggregateForBook(ctx, book.ID)
		if err != nil {
			log.Printf("Ошибка при обработке книги %d: %v", book.ID, err)
			continue
		}

		dashboardBooks = append(dashboardBooks, DashboardBook{
			RatedBook: models.RatedBook{
				Book:          *book,
				AverageRating: avgRating,
				RatingCount:   ratingCount,
			},
			Availability: availability,
		})
	}

	return dashboardBooks, nil
}

// UploadCover stores the image in MinIO and writes its URL to the book row.
// A failed DB write removes the freshly uploaded object again.
func (s *bookService) UploadCover(ctx context.Context, bookID, ownerID int64, fileName string, file io.Reader, size int64) (string, error) {
	objectName, coverURL, err := s.storage.UploadCover(ctx, bookID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки обложки в MinIO: %w", err)
	}

	if err := s.bookRepo.SetCoverImage(ctx, bookID, ownerID, coverURL); err != nil {
		if deleteErr := s.storage.DeleteCover(ctx, objectName); deleteErr != nil {
			log.Printf("Не удалось удалить осиротевшую обложку %s: %v", objectName, deleteErr)
		}
		return "", err
	}

	return coverURL, nil
}
