package test

import (
	"context"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"borrowbee/internal/models"
	"borrowbee/internal/service"
)

// MockAuthService mock for AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

// MockUserService mock for UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCatalogService mock for CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, params service.CatalogParams, currentUserID int64) service.CatalogListing {
	args := m.Called(ctx, params, currentUserID)
	return args.Get(0).(service.CatalogListing)
}

func (m *MockCatalogService) BookDetail(ctx context.Context, bookID, currentUserID int64) (*service.BookDetail, error) {
	args := m.Called(ctx, bookID, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookDetail), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBookService mock for BookService
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) AddBook(ctx context.Context, ownerID int64, input service.BookInput) (*models.Book, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, bookID, ownerID int64, input service.BookInput) error {
	args := m.Called(ctx, bookID, ownerID, input)
	return args.Error(0)
}

func (m *MockBookService) ToggleAvailability(ctx context.Context, bookID, ownerID int64, makeAvailable bool) error {
	args := m.Called(ctx, bookID, ownerID, makeAvailable)
	return args.Error(0)
}

func (m *MockBookService) DeleteBook(ctx context.Context, bookID, ownerID int64) error {
	args := m.Called(ctx, bookID, ownerID)
	return args.Error(0)
}

func (m *MockBookService) UserBooks(ctx context.Context, ownerID int64) ([]service.DashboardBook, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DashboardBook), args.Error(1)
}

func (m *MockBookService) UploadCover(ctx context.Context, bookID, ownerID int64, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, bookID, ownerID, fileName, file, size)
	return args.String(0), args.Error(1)
}

// MockBorrowService mock for BorrowService
type MockBorrowService struct {
	mock.Mock
}

func (m *MockBorrowService) Submit(ctx context.Context, bookID, requesterID int64, message string) (*models.BorrowRequest, bool, error) {
	args := m.Called(ctx, bookID, requesterID, message)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.BorrowRequest), args.Bool(1), args.Error(2)
}

func (m *MockBorrowService) Transition(ctx context.Context, requestID, ownerID int64, newStatus string) (*models.BorrowRequestView, error) {
	args := m.Called(ctx, requestID, ownerID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRequestView), args.Error(1)
}

func (m *MockBorrowService) ListForRequester(ctx context.Context, userID int64) ([]models.BorrowRequestView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRequestView), args.Error(1)
}

func (m *MockBorrowService) ListForOwner(ctx context.Context, ownerID int64) ([]models.BorrowRequestView, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BorrowRequestView), args.Error(1)
}

// MockReviewService mock for ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Rate(ctx context.Context, bookID, userID int64, rating int) (*service.RatingSummary, error) {
	args := m.Called(ctx, bookID, userID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RatingSummary), args.Error(1)
}

// MockUserRepository mock for repository.UserRepository
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
