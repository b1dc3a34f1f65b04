package handler

import (
	"net/http"

	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/service"
	"github.com/silis/backend/pkg/auth"
)

// DefaultSubmissionLimit is the page size of GET /api/contact-submissions.
const DefaultSubmissionLimit = 50

const (
	msgSubmissionAccepted = "Заявка успешно отправлена! Мы свяжемся с вами в ближайшее время."
	msgSubmissionFailed   = "Произошла ошибка при обработке заявки. Попробуйте позже или свяжитесь с нами по телефону."
	msgSubmissionNotFound = "Заявка не найдена"
	msgStatusUpdated      = "Статус заявки обновлен"
)

// SubmissionHandler handles the contact form submission endpoints.
type SubmissionHandler struct {
	svc service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type statusUpdateResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
	NewStatus    string `json:"new_status"`
}

// Submit handles POST /api/contact-form.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form model.SubmissionForm
	if !decodeJSON(w, r, &form) {
		return
	}
	form.ClientIP = auth.ClientIP(r)

	sub, err := h.svc.Submit(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, "submit contact form", err, msgSubmissionNotFound, msgSubmissionFailed)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: msgSubmissionAccepted,
		ID:      sub.ID,
	})
}

// List handles GET /api/contact-submissions.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r, DefaultSubmissionLimit)
	if err != nil {
		badQuery(w, err)
		return
	}

	page, err := h.svc.List(r.Context(), r.URL.Query().Get("status"), skip, limit)
	if err != nil {
		writeServiceError(w, r, "list submissions", err, msgSubmissionNotFound, "Ошибка получения заявок")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UpdateStatus handles PUT /api/contact-submissions/{id}/status. The status
// comes from the query string or, failing that, a {"status": ...} body.
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status := r.URL.Query().Get("status")
	if status == "" && r.ContentLength != 0 {
		var body struct {
			Status string `json:"status"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		status = body.Status
	}

	if err := h.svc.UpdateStatus(r.Context(), id, status); err != nil {
		writeServiceError(w, r, "update submission status", err, msgSubmissionNotFound, "Ошибка обновления статуса заявки")
		return
	}

	writeJSON(w, http.StatusOK, statusUpdateResponse{
		Success:      true,
		Message:      msgStatusUpdated,
		SubmissionID: id,
		NewStatus:    status,
	})
}
