package models

import (
	"time"
)

// Периоды доступности книги
const (
	PeriodThreeDays = "3days"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
)

// Статусы заявки на заимствование
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type User struct {
	ID                     int64     `json:"id" db:"id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	FirstName              string    `json:"firstName" db:"first_name"`
	LastName               string    `json:"lastName" db:"last_name"`
	Bio                    string    `json:"bio" db:"bio"`
	Location               string    `json:"location" db:"location"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

type Book struct {
	ID                    int64      `json:"id" db:"id"`
	Title                 string     `json:"title" db:"title"`
	Author                string     `json:"author" db:"author"`
	Description           string     `json:"description" db:"description"`
	Category              string     `json:"category" db:"category"`
	CoverImage            string     `json:"coverImage" db:"cover_image"`
	AgeGroup              string     `json:"ageGroup" db:"age_group"`
	AvailabilityPeriod    string     `json:"availabilityPeriod" db:"availability_period"`
	AvailabilityStartDate *time.Time `json:"availabilityStartDate" db:"availability_start_date"`
	Available             bool       `json:"available" db:"available"`
	Active                bool       `json:"active" db:"active"`
	UserID                int64      `json:"userId" db:"user_id"`
	CreatedAt             time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" db:"updated_at"`
}

type Review struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"bookId" db:"book_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type BorrowRequest struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"bookId" db:"book_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AvailabilityStatus - результат расчета окна доступности книги
type AvailabilityStatus struct {
	Status    string `json:"status"` // active | expired
	Expired   bool   `json:"expired"`
	Available bool   `json:"available"`
	DaysLeft  int    `json:"daysLeft"`
}

// RatedBook - книга, обогащенная агрегатом оценок
type RatedBook struct {
	Book
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	UserRating    int     `json:"userRating"`
}

// BookOwner - данные книги вместе с контактами владельца
type BookOwner struct {
	BookID        int64  `db:"id"`
	Title         string `db:"title"`
	OwnerID       int64  `db:"user_id"`
	OwnerUsername string `db:"owner_username"`
	OwnerEmail    string `db:"owner_email"`
}

// BorrowRequestView - заявка вместе с данными книги для списков
type BorrowRequestView struct {
	BorrowRequest
	BookTitle         string `json:"bookTitle" db:"book_title"`
	BookAuthor        string `json:"bookAuthor" db:"book_author"`
	RequesterUsername string `json:"requesterUsername" db:"requester_username"`
	RequesterEmail    string `json:"requesterEmail" db:"requester_email"`
}
