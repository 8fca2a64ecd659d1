package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"borrowbee/internal/mailer"
	"borrowbee/internal/models"
	"borrowbee/internal/repository"
)

// Ошибки валидации и конфликтов процесса заимствования
var (
	ErrEmptyMessage    = errors.New("пожалуйста, добавьте сообщение к заявке")
	ErrInvalidBookID   = errors.New("неверный идентификатор книги")
	ErrBookNotFound    = errors.New("книга не найдена или недоступна")
	ErrOwnBook         = errors.New("нельзя взять почитать собственную книгу")
	ErrAlreadyPending  = errors.New("у вас уже есть ожидающая заявка на эту книгу")
	ErrAlreadyApproved = errors.New("ваша заявка на эту книгу уже одобрена")
	ErrInvalidStatus   = errors.New("статус заявки может быть только approved или rejected")
)

type BorrowService interface {
	Submit(ctx context.Context, bookID, requesterID int64, message string) (*models.BorrowRequest, bool, error)
	Transition(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error)
	ListForRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error)
}

type borrowService struct {
	borrowRepo repository.BorrowRepository
	bookRepo   repository.BookRepository
	userRepo   repository.UserRepository
	mailer     mailer.Mailer
}

func NewBorrowService(borrowRepo repository.BorrowRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository, mailer mailer.Mailer) BorrowService {
	return &borrowService{
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		mailer:     mailer,
	}
}

// Submit validates and records a borrow request, then notifies the book owner
// by email. The second return value reports whether the notification went out;
// a failed email never fails an already recorded request.
func (s *borrowService) Submit(ctx context.Context, bookID, requesterID int64, message string) (*models.BorrowRequest, bool, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, false, ErrEmptyMessage
	}

	if bookID <= 0 {
		return nil, false, ErrInvalidBookID
	}

	// only active gates the request, an expired window does not
	owner, err := s.bookRepo.GetOwnerContact(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrBookNotFound
		}
		return nil, false, err
	}

	if owner.OwnerID == requesterID {
		return nil, false, ErrOwnBook
	}

	status, err := s.borrowRepo.ActiveStatus(ctx, bookID, requesterID)
	if err != nil {
		return nil, false, err
	}
	if conflictErr := conflictForStatus(status); conflictErr != nil {
		return nil, false, conflictErr
	}

	req := &models.BorrowRequest{
		BookID:  bookID,
		UserID:  requesterID,
		Message: message,
	}

	err = s.borrowRepo.Create(ctx, req)
	if err != nil {
		// a concurrent request for the same pair won the race: the unique
		// index rejected ours, re-read the winner's status for the message
		if errors.Is(err, repository.ErrDuplicateRequest) {
			status, statusErr := s.borrowRepo.ActiveStatus(ctx, bookID, requesterID)
			if statusErr == nil {
				if conflictErr := conflictForStatus(status); conflictErr != nil {
					return nil, false, conflictErr
				}
			}
			return nil, false, ErrAlreadyPending
		}
		return nil, false, err
	}

	emailSent := s.notifyOwner(ctx, owner, requesterID, message)

	return req, emailSent, nil
}

func conflictForStatus(status string) error {
	switch status {
	case models.StatusPending:
		return ErrAlreadyPending
	case models.StatusApproved:
		return ErrAlreadyApproved
	}
	return nil
}

func (s *borrowService) notifyOwner(ctx context.Context, owner *models.BookOwner, requesterID int64, message string) bool {
	requester, err := s.userRepo.GetUserByID(ctx, requesterID)
	if err != nil {
		log.Printf("Не удалось получить данные заявителя %d для письма: %v", requesterID, err)
		return false
	}

	return s.mailer.SendBorrowRequest(ctx, owner.OwnerEmail, requester.Username, owner.Title, message, requester.Email)
}

// Transition moves a request out of pending. Only the book owner may do it and
// only to approved or rejected; the requester is notified best-effort.
func (s *borrowService) Transition(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error) {
	if newStatus != models.StatusApproved && newStatus != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	view, err := s.borrowRepo.UpdateStatus(ctx, requestID, ownerID, newStatus)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Your borrow request for '%s'", view.BookTitle)
	decision := "approved"
	if newStatus == models.StatusRejected {
		decision = "rejected"
	}
	body := fmt.Sprintf("The owner has %s your request to borrow '%s' by %s.", decision, view.BookTitle, view.BookAuthor)

	if !s.mailer.SendNotification(ctx, view.RequesterEmail, subject, body) {
		log.Printf("Не удалось уведомить пользователя %d о решении по заявке %d", view.UserID, view.ID)
	}

	return view, nil
}

func (s *borrowService) ListForRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error) {
	return s.borrowRepo.GetByRequester(ctx, userID)
}

func (s *borrowService) ListForOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error) {
	return s.borrowRepo.GetByOwner(ctx, ownerID)
}
