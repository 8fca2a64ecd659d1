package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"borrowbee/internal/repository"
	"borrowbee/internal/service"
)

// Dashboard serves the user's profile, books and borrow requests on GET, and
// the action-discriminated management form on POST.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.dashboardView(w, r)
	case http.MethodPost:
		h.dashboardAction(w, r)
	default:
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) dashboardView(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, "Пользователь не найден. Войдите снова", http.StatusUnauthorized)
		return
	}

	books, err := h.BookService.UserBooks(r.Context(), userID)
	if err != nil {
		log.Printf("Ошибка при загрузке панели пользователя %d: %v", userID, err)
		WriteError(w, "Не удалось загрузить панель. Попробуйте еще раз", http.StatusInternalServerError)
		return
	}

	requests, err := h.BorrowService.ListForRequester(r.Context(), userID)
	if err != nil {
		log.Printf("Ошибка при загрузке панели пользователя %d: %v", userID, err)
		WriteError(w, "Не удалось загрузить панель. Попробуйте еще раз", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"user":           user,
		"books":          books,
		"borrowRequests": requests,
	}, http.StatusOK)
}

func (h *Handlers) dashboardAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteFailure(w, "Неверный формат запроса")
		return
	}

	switch r.FormValue("action") {
	case "update_profile":
		h.updateProfile(w, r, userID)
	case "add_book":
		h.addBook(w, r, userID)
	case "update_book":
		h.updateBook(w, r, userID)
	case "toggle_availability":
		h.toggleAvailability(w, r, userID)
	case "delete_book":
		h.deleteBook(w, r, userID)
	default:
		WriteFailure(w, "Неизвестное действие")
	}
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	req := service.UpdateProfileRequest{
		Name:     r.FormValue("name"),
		Bio:      r.FormValue("bio"),
		Location: r.FormValue("location"),
	}

	_, err := h.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			WriteFailure(w, "Имя обязательно")
			return
		}
		log.Printf("Ошибка при обновлении профиля %d: %v", userID, err)
		WriteFailure(w, "Не удалось обновить профиль. Попробуйте еще раз")
		return
	}

	WriteJSON(w, StatusResponse{Success: true, Message: "Профиль обновлен"}, http.StatusOK)
}

func bookInputFromForm(r *http.Request) service.BookInput {
	return service.BookInput{
		Title:              r.FormValue("title"),
		Author:             r.FormValue("author"),
		Category:           r.FormValue("genre"),
		AgeGroup:           r.FormValue("age_group"),
		Description:        r.FormValue("description"),
		CoverImage:         r.FormValue("image_url"),
		AvailabilityPeriod: r.FormValue("availability_period"),
	}
}

func (h *Handlers) addBook(w http.ResponseWriter, r *http.Request, userID int64) {
	_, err := h.BookService.AddBook(r.Context(), userID, bookInputFromForm(r))
	if err != nil {
		if errors.Is(err, service.ErrBookFieldsRequired) {
			WriteFailure(w, "Название, автор и жанр обязательны")
			return
		}
		log.Printf("Ошибка при добавлении книги: %v", err)
		WriteFailure(w, "Не удалось добавить книгу. Попробуйте еще раз")
		return
	}

	WriteJSON(w, StatusResponse{Success: true, Message: "Книга добавлена"}, http.StatusOK)
}

func (h *Handlers) updateBook(w http.ResponseWriter, r *http.Request, userID int64) {
	bookID, _ := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	if bookID <= 0 {
		WriteFailure(w, "Неверный идентификатор книги")
		return
	}

	err := h.BookService.UpdateBook(r.Context(), bookID, userID, bookInputFromForm(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookFieldsRequired):
			WriteFailure(w, "Название, автор и жанр обязательны")
		case errors.Is(err, repository.ErrNotFound):
			WriteFailure(w, "Книга не найдена")
		default:
			log.Printf("Ошибка при обновлении книги %d: %v", bookID, err)
			WriteFailure(w, "Не удалось обновить книгу. Попробуйте еще раз")
		}
		return
	}

	WriteJSON(w, StatusResponse{Success: true, Message: "Книга обновлена"}, http.StatusOK)
}

func (h *Handlers) toggleAvailability(w http.ResponseWriter, r *http.Request, userID int64) {
	bookID, _ := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	if bookID <= 0 {
		WriteFailure(w, "Неверный идентификатор книги")
		return
	}

	newStatus, _ := strconv.Atoi(r.FormValue("new_status"))
	makeAvailable := newStatus != 0

	err := h.BookService.ToggleAvailability(r.Context(), bookID, userID, makeAvailable)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteFailure(w, "Книга не найдена")
			return
		}
		log.Printf("Ошибка при переключении доступности книги %d: %v", bookID, err)
		WriteFailure(w, "Не удалось изменить доступность. Попробуйте еще раз")
		return
	}

	message := "Книга снова опубликована в библиотеке"
	if !makeAvailable {
		message = "Все копии этой книги сняты с публикации"
	}

	WriteJSON(w, StatusResponse{Success: true, Message: message}, http.StatusOK)
}

func (h *Handlers) deleteBook(w http.ResponseWriter, r *http.Request, userID int64) {
	bookID, _ := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	if bookID <= 0 {
		WriteFailure(w, "Неверный идентификатор книги")
		return
	}

	err := h.BookService.DeleteBook(r.Context(), bookID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteFailure(w, "Книга не найдена")
			return
		}
		log.Printf("Ошибка при удалении книги %d: %v", bookID, err)
		WriteFailure(w, "Не удалось удалить книгу. Попробуйте еще раз")
		return
	}

	WriteJSON(w, StatusResponse{Success: true, Message: "Книга удалена"}, http.StatusOK)
}

// UploadCover stores a multipart cover image for the owner's book.
func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	bookID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookID <= 0 {
		WriteError(w, "Неверный идентификатор книги", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой или неверный формат", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		WriteError(w, "Файл обложки не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	coverURL, err := h.BookService.UploadCover(r.Context(), bookID, userID, header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Книга не найдена", http.StatusNotFound)
			return
		}
		log.Printf("Ошибка при загрузке обложки книги %d: %v", bookID, err)
		WriteError(w, "Не удалось загрузить обложку. Попробуйте еще раз", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]string{"coverUrl": coverURL}, http.StatusOK)
}
