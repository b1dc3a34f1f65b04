package handler

import (
	"net/http"

	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/service"
)

const msgContentUpdateFailed = "Ошибка обновления контента сайта"

// ContentHandler handles the site content endpoints.
type ContentHandler struct {
	svc service.ContentService
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

type contentUpdateResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	UpdatedFields []string          `json:"updated_fields"`
	Data          model.SiteContent `json:"data"`
}

type adminContentResponse struct {
	Data model.SiteContent `json:"data"`
	Meta model.ContentMeta `json:"meta"`
}

// Get handles the public GET /api/content. It never fails; defaults are
// served when storage is unavailable.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Get(r.Context()))
}

// AdminGet handles GET /api/admin/content.
func (h *ContentHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	data, meta, err := h.svc.AdminView(r.Context())
	if err != nil {
		writeServiceError(w, r, "get admin content", err, "Контент не найден", "Ошибка получения контента")
		return
	}
	writeJSON(w, http.StatusOK, adminContentResponse{Data: data, Meta: meta})
}

// Update handles PUT and POST /api/admin/content.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd model.ContentUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	h.apply(w, r, upd)
}

// UpdateContacts handles PUT /api/admin/contacts. The body is the bare
// contacts object; packages are left untouched.
func (h *ContentHandler) UpdateContacts(w http.ResponseWriter, r *http.Request) {
	var contacts model.Contacts
	if !decodeJSON(w, r, &contacts) {
		return
	}
	h.apply(w, r, model.ContentUpdate{Contacts: model.Some(contacts)})
}

// UpdatePackages handles PUT /api/admin/packages. The body is the bare
// packages object.
func (h *ContentHandler) UpdatePackages(w http.ResponseWriter, r *http.Request) {
	var packages model.Packages
	if !decodeJSON(w, r, &packages) {
		return
	}
	h.apply(w, r, model.ContentUpdate{Packages: model.Some(packages)})
}

func (h *ContentHandler) apply(w http.ResponseWriter, r *http.Request, upd model.ContentUpdate) {
	res, err := h.svc.Update(r.Context(), upd)
	if err != nil {
		writeServiceError(w, r, "update content", err, "Контент не найден", msgContentUpdateFailed)
		return
	}
	writeJSON(w, http.StatusOK, contentUpdateResponse{
		Success:       true,
		Message:       "Контент сайта успешно обновлен",
		UpdatedFields: res.UpdatedFields,
		Data:          res.Data,
	})
}

// Reset handles POST /api/admin/content/reset.
func (h *ContentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reset(r.Context())
	if err != nil {
		writeServiceError(w, r, "reset content", err, "Контент не найден", "Ошибка сброса контента")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Контент сайта сброшен к значениям по умолчанию",
		"data":    data,
	})
}
