package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"borrowbee/cmd/app"
	"borrowbee/internal/config"
	handlers "borrowbee/internal/handler"
	"borrowbee/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler)
	router.HandleFunc("/health", handlers.HealthHandler)

	router.HandleFunc("/api/auth/register", handler.Register)
	router.HandleFunc("/api/auth/login", handler.Login)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken)
	router.HandleFunc("/api/auth/logout", handler.Logout)

	router.HandleFunc("/api/books", handler.Books)
	router.HandleFunc("/api/books/categories", handler.Categories)
	router.HandleFunc("/api/book/{id}", handler.BookDetail)

	router.HandleFunc("/api/submit-rating", handler.SubmitRating)

	router.HandleFunc("/api/borrow-request", handler.BorrowRequest)
	router.HandleFunc("/api/borrow-requests", handler.MyRequests)
	router.HandleFunc("/api/borrow-requests/incoming", handler.IncomingRequests)
	router.HandleFunc("/api/borrow-requests/{id}/status", handler.TransitionRequest)

	router.HandleFunc("/api/dashboard", handler.Dashboard)
	router.HandleFunc("/api/books/{id}/cover", handler.UploadCover)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
