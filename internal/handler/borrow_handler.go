package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
	"borrowbee/internal/service"
)

// BorrowRequest files a borrow request from a form body (book_id, message).
func (h *Handlers) BorrowRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteFailure(w, "Неверный формат запроса")
		return
	}

	bookID, _ := strconv.ParseInt(r.FormValue("book_id"), 10, 64)
	message := r.FormValue("message")

	_, emailSent, err := h.BorrowService.Submit(r.Context(), bookID, userID, message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage),
			errors.Is(err, service.ErrInvalidBookID),
			errors.Is(err, service.ErrBookNotFound),
			errors.Is(err, service.ErrOwnBook),
			errors.Is(err, service.ErrAlreadyPending),
			errors.Is(err, service.ErrAlreadyApproved):
			WriteFailure(w, err.Error())
		default:
			log.Printf("Ошибка при создании заявки: %v", err)
			WriteFailure(w, "Не удалось отправить заявку. Попробуйте еще раз")
		}
		return
	}

	message = "Заявка отправлена! Владелец книги получит уведомление по почте"
	if !emailSent {
		message = "Заявка отправлена! Письмо доставить не удалось, но заявка сохранена"
	}

	WriteJSON(w, StatusResponse{Success: true, Message: message}, http.StatusOK)
}

// TransitionRequest lets the book owner approve or reject a pending request.
func (h *Handlers) TransitionRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || requestID <= 0 {
		WriteError(w, "Неверный идентификатор заявки", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	view, err := h.BorrowService.Transition(r.Context(), requestID, ownerID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			WriteFailure(w, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			WriteFailure(w, "Заявка не найдена или уже обработана")
		default:
			log.Printf("Ошибка при изменении статуса заявки %d: %v", requestID, err)
			WriteFailure(w, "Не удалось обработать заявку. Попробуйте еще раз")
		}
		return
	}

	WriteJSON(w, struct {
		Success bool                      `json:"success"`
		Request *models.BorrowRequestView `json:"request"`
	}{Success: true, Request: view}, http.StatusOK)
}

// MyRequests lists the current user's outgoing requests, newest first.
func (h *Handlers) MyRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	requests, err := h.BorrowService.ListForRequester(r.Context(), userID)
	if err != nil {
		log.Printf("Ошибка при получении заявок пользователя %d: %v", userID, err)
		WriteError(w, "Не удалось загрузить заявки", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, requests, http.StatusOK)
}

// IncomingRequests lists requests filed against the current user's books.
func (h *Handlers) IncomingRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	requests, err := h.BorrowService.ListForOwner(r.Context(), ownerID)
	if err != nil {
		log.Printf("Ошибка при получении входящих заявок %d: %v", ownerID, err)
		WriteError(w, "Не удалось загрузить заявки", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, requests, http.StatusOK)
}
