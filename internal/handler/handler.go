package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"borrowbee/internal/config"
	"borrowbee/internal/repository"
	"borrowbee/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	CatalogService service.CatalogService
	BookService    service.BookService
	BorrowService  service.BorrowService
	ReviewService  service.ReviewService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		CatalogService: service.Catalog,
		BookService:    service.Book,
		BorrowService:  service.Borrow,
		ReviewService:  service.Review,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"service": "borrowbee", "status": "ok"}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "healthy"}, http.StatusOK)
}
