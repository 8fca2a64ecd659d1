package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"borrowbee/internal/service"
)

type ratingRequest struct {
	BookID int64 `json:"book_id"`
	Rating int   `json:"rating"`
}

// SubmitRating accepts either a JSON body or form data, like the original
// rating widget posts.
func (h *Handlers) SubmitRating(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req ratingRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteFailure(w, "Неверные данные оценки")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteFailure(w, "Неверные данные оценки")
			return
		}
		req.BookID, _ = strconv.ParseInt(r.FormValue("book_id"), 10, 64)
		req.Rating, _ = strconv.Atoi(r.FormValue("rating"))
	}

	summary, err := h.ReviewService.Rate(r.Context(), req.BookID, userID, req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			WriteFailure(w, "Неверные данные оценки")
			return
		}
		log.Printf("Ошибка при сохранении оценки: %v", err)
		WriteFailure(w, "Не удалось сохранить оценку")
		return
	}

	WriteJSON(w, struct {
		Success     bool    `json:"success"`
		NewAverage  float64 `json:"newAverage"`
		RatingCount int     `json:"ratingCount"`
	}{
		Success:     true,
		NewAverage:  summary.NewAverage,
		RatingCount: summary.RatingCount,
	}, http.StatusOK)
}
