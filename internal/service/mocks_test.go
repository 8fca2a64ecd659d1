package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"borrowbee/internal/models"
)

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetActiveByID(ctx context.Context, bookID int64) (*models.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetOwnerContact(ctx context.Context, bookID int64) (*models.BookOwner, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookOwner), args.Error(1)
}

func (m *MockBookRepository) GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) FindCatalog(ctx context.Context, search, category string) ([]models.Book, error) {
	args := m.Called(ctx, search, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *models.Book, ownerID int64) error {
	args := m.Called(ctx, book, ownerID)
	return args.Error(0)
}

func (m *MockBookRepository) SetAvailable(ctx context.Context, bookID int64, available bool) error {
	args := m.Called(ctx, bookID, available)
	return args.Error(0)
}

func (m *MockBookRepository) Reactivate(ctx context.Context, bookID, ownerID int64, startDate time.Time) error {
	args := m.Called(ctx, bookID, ownerID, startDate)
	return args.Error(0)
}

func (m *MockBookRepository) DeactivateCopies(ctx context.Context, bookID, ownerID int64) (int64, error) {
	args := m.Called(ctx, bookID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) SetCoverImage(ctx context.Context, bookID, ownerID int64, coverURL string) error {
	args := m.Called(ctx, bookID, ownerID, coverURL)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, bookID, ownerID int64) error {
	args := m.Called(ctx, bookID, ownerID)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) AggregateForBook(ctx context.Context, bookID int64) (float64, int, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) GetUserRating(ctx context.Context, bookID, userID int64) (int, error) {
	args := m.Called(ctx, bookID, userID)
	return args.Int(0), args.Error(1)
}

type MockBorrowRepository struct {
	mock.Mock
}

func (m *MockBorrowRepository) Create(ctx context.Context, req *models.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBorrowRepository) ActiveStatus(ctx context.Context, bookID, userID int64) (string, error) {
	args := m.Called(ctx, bookID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBorrowRepository) UpdateStatus(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error) {
	args := m.Called(ctx, requestID, ownerID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRequestView), args.Error(1)
}

func (m *MockBorrowRepository) GetByRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRequestView), args.Error(1)
}

func (m *MockBorrowRepository) GetByOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRequestView), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendBorrowRequest(ctx context.Context, toEmail, fromUserName, bookTitle, message, fromUserEmail string) bool {
	args := m.Called(ctx, toEmail, fromUserName, bookTitle, message, fromUserEmail)
	return args.Bool(0)
}

func (m *MockMailer) SendNotification(ctx context.Context, toEmail, subject, message string) bool {
	args := m.Called(ctx, toEmail, subject, message)
	return args.Bool(0)
}
