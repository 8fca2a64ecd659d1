package service

import (
	"context"
	"time"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
)

const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// PeriodDuration maps an availability period to its duration.
// Unknown or empty periods fall back to a week.
func PeriodDuration(period string) time.Duration {
	switch period {
	case models.PeriodThreeDays:
		return 3 * 24 * time.Hour
	case models.PeriodWeek:
		return 7 * 24 * time.Hour
	case models.PeriodMonth:
		return 30 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// ComputeStatus derives the availability window state of a book at the given
// moment. Pure function: it never touches storage. DaysLeft is truncated, a
// book expiring in 23 hours reports 0 days left while still active.
func ComputeStatus(book *models.Book, now time.Time) models.AvailabilityStatus {
	if book.AvailabilityStartDate == nil {
		return models.AvailabilityStatus{
			Status:    StatusExpired,
			Expired:   true,
			Available: book.Available,
			DaysLeft:  0,
		}
	}

	expiry := book.AvailabilityStartDate.Add(PeriodDuration(book.AvailabilityPeriod))

	if now.After(expiry) {
		return models.AvailabilityStatus{
			Status:    StatusExpired,
			Expired:   true,
			Available: book.Available,
			DaysLeft:  0,
		}
	}

	return models.AvailabilityStatus{
		Status:    StatusActive,
		Expired:   false,
		Available: book.Available,
		DaysLeft:  int(expiry.Sub(now).Hours() / 24),
	}
}

// IsLendable reports whether the book can be borrowed right now.
func IsLendable(book *models.Book, now time.Time) bool {
	return book.Active && book.Available && !ComputeStatus(book, now).Expired
}

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, book *models.Book) (models.AvailabilityStatus, error)
}

type availabilityService struct {
	bookRepo repository.BookRepository
	now      func() time.Time
}

func NewAvailabilityService(bookRepo repository.BookRepository) AvailabilityService {
	return &availabilityService{
		bookRepo: bookRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CheckAvailability computes the window status and applies the lazy
// deactivation: an expired book that still carries available = TRUE is turned
// off and the change persisted. A second call on an already deactivated book
// issues no further writes.
func (s *availabilityService) CheckAvailability(ctx context.Context, book *models.Book) (models.AvailabilityStatus, error) {
	status := ComputeStatus(book, s.now())

	if status.Expired && book.Available && book.AvailabilityStartDate != nil {
		if err := s.applyExpiry(ctx, book); err != nil {
			return status, err
		}
		status.Available = false
	}

	return status, nil
}

func (s *availabilityService) applyExpiry(ctx context.Context, book *models.Book) error {
	if err := s.bookRepo.SetAvailable(ctx, book.ID, false); err != nil {
		return err
	}

	book.Available = false
	return nil
}
