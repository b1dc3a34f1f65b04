package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/security"
	"github.com/silis/backend/internal/service"
	"github.com/silis/backend/pkg/auth"
)

// DefaultNewsLimit is the page size of the public news feed.
const DefaultNewsLimit = 6

const msgNewsNotFound = "Новость не найдена"

// NewsHandler handles the news article endpoints.
type NewsHandler struct {
	svc service.NewsService
}

// NewNewsHandler creates a NewsHandler.
func NewNewsHandler(svc service.NewsService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

type newsResponse struct {
	Success bool               `json:"success"`
	News    *model.NewsArticle `json:"news"`
	Message string             `json:"message"`
}

// List handles GET /api/news. Only published articles are listed unless
// published=false is given, which lists everything.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r, DefaultNewsLimit)
	if err != nil {
		badQuery(w, err)
		return
	}
	published, err := queryBool(r, "published")
	if err != nil {
		badQuery(w, err)
		return
	}

	var filter model.NewsFilter
	if published == nil || *published {
		yes := true
		filter.Published = &yes
	}

	page, err := h.svc.List(r.Context(), filter, skip, limit)
	if err != nil {
		writeServiceError(w, r, "list news", err, msgNewsNotFound, "Ошибка получения новостей")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /api/news/{id}.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get news", err, msgNewsNotFound, "Ошибка получения новости")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// Create handles POST /api/news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.NewsInput
	if !decodeJSON(w, r, &in) {
		return
	}

	article, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "create news", err, msgNewsNotFound, "Ошибка создания новости")
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{
		Success: true,
		News:    article,
		Message: "Новость успешно создана",
	})
}

// Update handles PUT /api/news/{id}. Keys outside the news whitelist are
// dropped and reported as a security event before the rest is applied.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	kept, dropped, err := security.FilterFields(raw, security.NewsUpdateFields)
	if err != nil {
		writeServiceError(w, r, "update news", err, msgNewsNotFound, "Ошибка обновления новости")
		return
	}
	if len(dropped) > 0 {
		logging.SecurityEvent(r.Context(), "NEWS_FIELD_REJECTED",
			"news "+id+": ignored fields "+strings.Join(dropped, ", "), auth.ClientIP(r))
	}

	var upd model.NewsUpdate
	if err := remarshal(kept, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "Ошибка валидации: некорректные типы полей")
		return
	}

	article, err := h.svc.Update(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, r, "update news", err, msgNewsNotFound, "Ошибка обновления новости")
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{
		Success: true,
		News:    article,
		Message: "Новость успешно обновлена",
	})
}

// Delete handles DELETE /api/news/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete news", err, msgNewsNotFound, "Ошибка удаления новости")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Новость успешно удалена",
		"news_id": id,
	})
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
