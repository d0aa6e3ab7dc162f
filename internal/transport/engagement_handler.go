package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/middleware"
	"otica-store/internal/service"
)

// EngagementHandler handles the exam, newsletter and contact flows.
type EngagementHandler struct {
	engagement *service.EngagementService
	logger     *zap.Logger
}

// NewEngagementHandler creates an EngagementHandler.
func NewEngagementHandler(engagement *service.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{engagement: engagement, logger: logger}
}

// RegisterRoutes registers all engagement routes.
func (h *EngagementHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/exams", h.ScheduleExam)
	r.Post("/api/newsletter", h.SubscribeNewsletter)
	r.Post("/api/contact", h.SubmitContact)
}

// ScheduleExam books an eye-exam slot.
func (h *EngagementHandler) ScheduleExam(w http.ResponseWriter, r *http.Request) {
	var req service.ExamRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.engagement.ScheduleExam(r.Context(), req)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter registers an email for the newsletter.
func (h *EngagementHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.engagement.SubscribeNewsletter(r.Context(), req.Email)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// SubmitContact files a contact-form message.
func (h *EngagementHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.engagement.SubmitContact(r.Context(), req)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}
