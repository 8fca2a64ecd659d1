package service

import (
	"borrowbee/internal/config"
	"borrowbee/internal/mailer"
	"borrowbee/internal/repository"
	"borrowbee/internal/storage"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Availability AvailabilityService
	Catalog      CatalogService
	Book         BookService
	Borrow       BorrowService
	Review       ReviewService
}

func NewService(rep *repository.Repository, cfg *config.Config, mail mailer.Mailer, storage storage.Storage) *Service {
	availability := NewAvailabilityService(rep.Book)

	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User),
		Availability: availability,
		Catalog:      NewCatalogService(rep.Book, rep.Review, rep.User, availability),
		Book:         NewBookService(rep.Book, rep.Review, availability, storage),
		Borrow:       NewBorrowService(rep.Borrow, rep.Book, rep.User, mail),
		Review:       NewReviewService(rep.Review),
	}
}
