package catalog

import (
	"context"
	"sync"

	"otica-store/internal/domain"
)

// EngagementRepository collects the records produced by the storefront's
// engagement flows: exam appointments, newsletter subscriptions and contact
// messages. The mock just accumulates them in memory.
type EngagementRepository interface {
	CreateExam(ctx context.Context, exam *domain.ExamAppointment) error
	CreateSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error
	CreateContact(ctx context.Context, msg *domain.ContactMessage) error
}

type memoryEngagementRepository struct {
	mu            sync.Mutex
	exams         []domain.ExamAppointment
	subscriptions []domain.NewsletterSubscription
	contacts      []domain.ContactMessage
}

// NewMemoryEngagementRepository creates an empty EngagementRepository.
func NewMemoryEngagementRepository() EngagementRepository {
	return &memoryEngagementRepository{}
}

func (r *memoryEngagementRepository) CreateExam(ctx context.Context, exam *domain.ExamAppointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exams = append(r.exams, *exam)
	return nil
}

func (r *memoryEngagementRepository) CreateSubscription(ctx context.Context, sub *domain.NewsletterSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subscriptions = append(r.subscriptions, *sub)
	return nil
}

func (r *memoryEngagementRepository) CreateContact(ctx context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contacts = append(r.contacts, *msg)
	return nil
}
