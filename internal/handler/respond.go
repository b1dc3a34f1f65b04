package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/silis/backend/internal/apperr"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: code, Message: message})
}

// writeServiceError maps err onto a status and a public message. notFound
// is used for 404s and fallback for anything that may not be shown.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error, notFound, fallback string) {
	status := apperr.HTTPStatus(err)
	msg := apperr.PublicMessage(err, fallback)
	switch status {
	case http.StatusNotFound:
		msg = notFound
	case http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
	default:
		slog.InfoContext(r.Context(), op+" rejected", "error", err)
	}
	writeError(w, status, apperr.Code(err), msg)
}

// decodeJSON reads the request body into v. It writes the error response
// itself and reports false when the body cannot be used.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Размер запроса превышает допустимый")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "Некорректный JSON в теле запроса")
		return false
	}
	return true
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name, "параметр %s должен быть целым числом", name)
	}
	return n, nil
}

// queryBool reads a boolean query parameter; nil means absent.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validation(name, "параметр %s должен быть true или false", name)
	}
	return &b, nil
}

// pageParams reads skip and limit with the given default limit.
func pageParams(r *http.Request, defaultLimit int) (skip, limit int, err error) {
	if skip, err = queryInt(r, "skip", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit", defaultLimit); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func badQuery(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, apperr.Code(err), apperr.PublicMessage(err, "Некорректные параметры запроса"))
}
