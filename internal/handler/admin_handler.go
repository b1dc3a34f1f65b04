package handler

import (
	"net/http"

	"github.com/silis/backend/internal/logging"
	"github.com/silis/backend/internal/model"
	"github.com/silis/backend/internal/security"
	"github.com/silis/backend/internal/service"
	"github.com/silis/backend/pkg/auth"
)

// DefaultAdminLimit is the page size of the admin list views.
const DefaultAdminLimit = 20

// AdminHandler handles the authenticated admin endpoints.
type AdminHandler struct {
	auth        auth.Authenticator
	admin       service.AdminService
	submissions service.SubmissionService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(a auth.Authenticator, admin service.AdminService, submissions service.SubmissionService) *AdminHandler {
	return &AdminHandler{auth: a, admin: admin, submissions: submissions}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type changePasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	NewHash string `json:"new_hash"`
}

// Login handles POST /api/admin/login. The returned token is the password
// hash and is sent back as "Authorization: Bearer <token>".
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		logging.SecurityEvent(r.Context(), "ADMIN_LOGIN_FAILED", err.Error(), auth.ClientIP(r))
		writeServiceError(w, r, "admin login", err, "", "Ошибка авторизации")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		Message: "Успешный вход в систему",
	})
}

// ChangePassword handles POST /api/admin/change-password. The new hash is
// returned for the operator to put into ADMIN_PASSWORD_HASH.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hash, err := h.auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		logging.SecurityEvent(r.Context(), "ADMIN_PASSWORD_CHANGE_FAILED", err.Error(), auth.ClientIP(r))
		writeServiceError(w, r, "change admin password", err, "", "Ошибка смены пароля")
		return
	}

	logging.SecurityEvent(r.Context(), "ADMIN_PASSWORD_CHANGED", "new admin password hash issued", auth.ClientIP(r))
	writeJSON(w, http.StatusOK, changePasswordResponse{
		Success: true,
		Message: "Пароль изменен. Сохраните новый хэш в ADMIN_PASSWORD_HASH и перезапустите сервер",
		NewHash: hash,
	})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, "admin stats", err, "", "Ошибка получения статистики")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Submissions handles GET /api/admin/submissions.
func (h *AdminHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r, DefaultAdminLimit)
	if err != nil {
		badQuery(w, err)
		return
	}

	page, err := h.admin.Submissions(r.Context(), r.URL.Query().Get("status"), skip, limit)
	if err != nil {
		writeServiceError(w, r, "admin submissions", err, "", "Ошибка получения заявок")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// News handles GET /api/admin/news. Drafts are included unless a
// published filter is given.
func (h *AdminHandler) News(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pageParams(r, DefaultAdminLimit)
	if err != nil {
		badQuery(w, err)
		return
	}
	published, err := queryBool(r, "published")
	if err != nil {
		badQuery(w, err)
		return
	}

	page, err := h.admin.News(r.Context(), model.NewsFilter{Published: published}, skip, limit)
	if err != nil {
		writeServiceError(w, r, "admin news", err, "", "Ошибка получения новостей")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UpdateSubmissionStatus handles PUT /api/admin/submissions/{id}/status.
// The new status is read from the new_status query parameter.
func (h *AdminHandler) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id := security.SanitizeText(r.PathValue("id"), security.MaxIDLength)
	status := r.URL.Query().Get("new_status")

	if err := h.submissions.UpdateStatus(r.Context(), id, status); err != nil {
		writeServiceError(w, r, "admin update submission status", err, msgSubmissionNotFound, "Ошибка обновления статуса заявки")
		return
	}

	writeJSON(w, http.StatusOK, statusUpdateResponse{
		Success:      true,
		Message:      msgStatusUpdated,
		SubmissionID: id,
		NewStatus:    status,
	})
}
