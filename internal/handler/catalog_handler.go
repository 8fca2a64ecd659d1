package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"borrowbee/internal/service"
)

// Books - каталог с поиском, фильтрами и пагинацией
func (h *Handlers) Books(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()

	rating, err := strconv.ParseFloat(query.Get("rating"), 64)
	if err != nil {
		rating = 0
	}

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	params := service.CatalogParams{
		Search:    query.Get("search"),
		Category:  query.Get("genre"),
		MinRating: rating,
		Page:      page,
	}

	// anonymous callers get userRating = 0 for every book
	currentUserID, _ := CurrentUserID(r)

	listing := h.CatalogService.List(r.Context(), params, currentUserID)

	WriteJSON(w, listing, http.StatusOK)
}

func (h *Handlers) BookDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bookID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookID <= 0 {
		WriteError(w, "Неверный идентификатор книги", http.StatusBadRequest)
		return
	}

	currentUserID, _ := CurrentUserID(r)

	detail, err := h.CatalogService.BookDetail(r.Context(), bookID, currentUserID)
	if err != nil {
		WriteError(w, "Книга не найдена", http.StatusNotFound)
		return
	}

	WriteJSON(w, detail, http.StatusOK)
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := h.CatalogService.Categories(r.Context())
	if err != nil {
		WriteJSON(w, []string{}, http.StatusOK)
		return
	}

	WriteJSON(w, categories, http.StatusOK)
}
