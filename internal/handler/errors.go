package handlers

import (
	"encoding/json"
	"net/http"
)

type contextKey string

// Ключи контекста, заполняемые auth-middleware
const (
	CtxUserID   contextKey = "userID"
	CtxUsername contextKey = "username"
	CtxEmail    contextKey = "email"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse - ответ формы {success, message}
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteJSON - функция для успешных ответов
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteFailure - отказ в формате {success:false, message}, всегда 200
func WriteFailure(w http.ResponseWriter, message string) {
	WriteJSON(w, StatusResponse{Success: false, Message: message}, http.StatusOK)
}

// CurrentUserID returns the authenticated user's id from the request context.
func CurrentUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(CtxUserID).(int64)
	return userID, ok
}
