package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/snowskye/clinic-backend/internal/models"
	"github.com/snowskye/clinic-backend/internal/storage"
)

// LeadService records inbound chat messages. Capture is unconditional:
// every chat call appends exactly one lead, with no deduplication and no
// retention policy.
type LeadService struct {
	store storage.Store
}

func NewLeadService(store storage.Store) *LeadService {
	return &LeadService{store: store}
}

// Capture appends one lead. The message must already be trimmed and capped,
// the email already normalized and validated (or empty).
func (s *LeadService) Capture(message, email string) (*models.Lead, error) {
	lead := &models.Lead{
		ID:      uuid.NewString(),
		Message: message,
		Email:   email,
		Time:    time.Now().UTC(),
	}
	if err := s.store.AppendLead(lead); err != nil {
		return nil, err
	}
	return lead, nil
}
