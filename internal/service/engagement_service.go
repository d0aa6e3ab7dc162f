package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
	"otica-store/internal/validation"
)

// ExamRequest is the input of the exam-scheduling flow. Location selects the
// store unit.
type ExamRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

// ContactRequest is the input of the contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// EngagementService handles the mutating storefront flows that are not
// cart or auth: exam scheduling, newsletter signup and the contact form.
// Field validation runs before the simulated transport, so bad input is
// rejected without a network round trip.
type EngagementService struct {
	records  catalog.EngagementRepository
	injector *fault.Injector
	profile  fault.Profile
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngagementService creates an EngagementService.
func NewEngagementService(records catalog.EngagementRepository, injector *fault.Injector, profile fault.Profile, logger *zap.Logger) *EngagementService {
	return &EngagementService{
		records:  records,
		injector: injector,
		profile:  profile,
		logger:   logger,
		now:      time.Now,
	}
}

// ScheduleExam books an eye-exam slot at the unit matching the requested
// location.
func (s *EngagementService) ScheduleExam(ctx context.Context, req ExamRequest) (domain.Response[domain.ExamAppointment], error) {
	if req.Name == "" || req.Phone == "" || req.Location == "" {
		return domain.Fail[domain.ExamAppointment]("Por favor, preencha todos os campos obrigatórios."), nil
	}
	if !validation.ValidPhone(req.Phone) {
		return domain.Fail[domain.ExamAppointment]("Por favor, insira um telefone válido no formato (XX) XXXXX-XXXX."), nil
	}

	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão com o servidor"); err != nil {
		return domain.Response[domain.ExamAppointment]{}, err
	}

	storeID := "2"
	if req.Location == "centro" {
		storeID = "1"
	}

	now := s.now()
	appointment := domain.ExamAppointment{
		ID:            "exam_" + uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		StoreID:       storeID,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Status:        domain.ExamStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.records.CreateExam(ctx, &appointment); err != nil {
		return domain.Response[domain.ExamAppointment]{}, err
	}

	s.logger.Info("exam scheduled",
		zap.String("appointment_id", appointment.ID),
		zap.String("store_id", appointment.StoreID),
	)
	return domain.OKMessage(appointment,
		"Agendamento realizado com sucesso! Entraremos em contato via WhatsApp para confirmar."), nil
}

// SubscribeNewsletter registers an email for the newsletter.
func (s *EngagementService) SubscribeNewsletter(ctx context.Context, email string) (domain.Response[domain.NewsletterSubscription], error) {
	if email == "" || !validation.ValidEmail(email) {
		return domain.Fail[domain.NewsletterSubscription]("Por favor, insira um email válido."), nil
	}

	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão"); err != nil {
		return domain.Response[domain.NewsletterSubscription]{}, err
	}

	subscription := domain.NewsletterSubscription{
		ID:           "newsletter_" + uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		IsActive:     true,
		SubscribedAt: s.now(),
	}

	if err := s.records.CreateSubscription(ctx, &subscription); err != nil {
		return domain.Response[domain.NewsletterSubscription]{}, err
	}

	s.logger.Info("newsletter subscription", zap.String("subscription_id", subscription.ID))
	return domain.OKMessage(subscription,
		"Inscrição realizada com sucesso! Você receberá nossas novidades."), nil
}

// SubmitContact files a contact-form message. An empty subject gets the
// site default.
func (s *EngagementService) SubmitContact(ctx context.Context, req ContactRequest) (domain.Response[domain.ContactMessage], error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return domain.Fail[domain.ContactMessage]("Por favor, preencha todos os campos obrigatórios."), nil
	}
	if !validation.ValidEmail(req.Email) {
		return domain.Fail[domain.ContactMessage]("Por favor, insira um email válido."), nil
	}

	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão"); err != nil {
		return domain.Response[domain.ContactMessage]{}, err
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Contato via site"
	}

	now := s.now()
	message := domain.ContactMessage{
		ID:        "contact_" + uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   subject,
		Message:   strings.TrimSpace(req.Message),
		Status:    domain.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.records.CreateContact(ctx, &message); err != nil {
		return domain.Response[domain.ContactMessage]{}, err
	}

	s.logger.Info("contact message received", zap.String("message_id", message.ID))
	return domain.OKMessage(message, "Mensagem enviada com sucesso! Retornaremos em breve."), nil
}
