package service

import (
	"context"
	"fmt"
	"log"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
)

// CatalogPageSize - фиксированный размер страницы каталога
const CatalogPageSize = 12

type CatalogParams struct {
	Search    string
	Category  string
	MinRating float64
	Page      int
}

type CatalogListing struct {
	Books      []models.RatedBook `json:"books"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	TotalBooks int                `json:"totalBooks"`
}

type BookDetail struct {
	Book         models.RatedBook          `json:"book"`
	Owner        *models.User              `json:"owner"`
	Availability models.AvailabilityStatus `json:"availability"`
}

type CatalogService interface {
	List(ctx context.Context, params CatalogParams, currentUserID int64) CatalogListing
	BookDetail(ctx context.Context, bookID, currentUserID int64) (*BookDetail, error)
	Categories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	bookRepo     repository.BookRepository
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	availability AvailabilityService
}

func NewCatalogService(bookRepo repository.BookRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, availability AvailabilityService) CatalogService {
	return &catalogService{
		bookRepo:     bookRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		availability: availability,
	}
}

// List assembles the filtered, rated, paginated catalog. The rating filter is
// applied after enrichment, so the whole candidate set is materialized and
// aggregated before the page is sliced. Any failure degrades to an empty
// listing with zeroed pagination metadata, never an error.
func (s *catalogService) List(ctx context.Context, params CatalogParams, currentUserID int64) CatalogListing {
	empty := CatalogListing{Books: []models.RatedBook{}, Page: 1, TotalPages: 0, TotalBooks: 0}

	page := params.Page
	if page < 1 {
		page = 1
	}

	books, err := s.bookRepo.FindCatalog(ctx, params.Search, params.Category)
	if err != nil {
		log.Printf("Ошибка при загрузке каталога: %v", err)
		return empty
	}

	ratedBooks := make([]models.RatedBook, 0, len(books))
	for i := range books {
		rated, err := s.enrich(ctx, &books[i], currentUserID)
		if err != nil {
			log.Printf("Ошибка при агрегации оценок каталога: %v", err)
			return empty
		}

		if params.MinRating == 0 || rated.AverageRating >= params.MinRating {
			ratedBooks = append(ratedBooks, rated)
		}
	}

	totalBooks := len(ratedBooks)
	totalPages := 1
	if totalBooks > 0 {
		totalPages = (totalBooks + CatalogPageSize - 1) / CatalogPageSize
	}

	start := (page - 1) * CatalogPageSize
	if start > totalBooks {
		start = totalBooks
	}
	end := start + CatalogPageSize
	if end > totalBooks {
		end = totalBooks
	}

	return CatalogListing{
		Books:      ratedBooks[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalBooks: totalBooks,
	}
}

func (s *catalogService) enrich(ctx context.Context, book *models.Book, currentUserID int64) (models.RatedBook, error) {
	avgRating, ratingCount, err := s.reviewRepo.AggregateForBook(ctx, book.ID)
	if err != nil {
		return models.RatedBook{}, err
	}

	userRating := 0
	if currentUserID > 0 {
		userRating, err = s.reviewRepo.GetUserRating(ctx, book.ID, currentUserID)
		if err != nil {
			return models.RatedBook{}, err
		}
	}

	return models.RatedBook{
		Book:          *book,
		AverageRating: avgRating,
		RatingCount:   ratingCount,
		UserRating:    userRating,
	}, nil
}

func (s *catalogService) BookDetail(ctx context.Context, bookID, currentUserID int64) (*BookDetail, error) {
	book, err := s.bookRepo.GetActiveByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// the lazy expiry write happens here, before the flag is shown
	availability, err := s.availability.CheckAvailability(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке доступности книги: %w", err)
	}

	rated, err := s.enrich(ctx, book, currentUserID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetUserByID(ctx, book.UserID)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		Book:         rated,
		Owner:        owner,
		Availability: availability,
	}, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	return s.bookRepo.Categories(ctx)
}
