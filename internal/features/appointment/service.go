package appointment

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentService interface {
	Create(ctx context.Context, a *Appointment) error
	// Schedule persists an engine-generated appointment and returns its id.
	Schedule(ctx context.Context, caseID, clientID string, at time.Time, location, purpose string) (string, error)
	ListByCase(ctx context.Context, caseID string) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error
	Delete(ctx context.Context, id string) error
}

type AppointmentServiceImpl struct {
	Repo AppointmentRepository
}

func NewAppointmentService(repo AppointmentRepository) AppointmentService {
	return &AppointmentServiceImpl{Repo: repo}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, a *Appointment) error {
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	return s.Repo.Create(ctx, a)
}

func (s *AppointmentServiceImpl) Schedule(ctx context.Context, caseID, clientID string, at time.Time, location, purpose string) (string, error) {
	a := &Appointment{
		ScheduledAt: at,
		Location:    location,
		Purpose:     purpose,
	}
	if caseID != "" {
		if oid, err := primitive.ObjectIDFromHex(caseID); err == nil {
			a.CaseID = oid
		}
	}
	if clientID != "" {
		if oid, err := primitive.ObjectIDFromHex(clientID); err == nil {
			a.ClientID = oid
		}
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		return "", err
	}
	return a.ID.Hex(), nil
}

func (s *AppointmentServiceImpl) ListByCase(ctx context.Context, caseID string) ([]Appointment, error) {
	return s.Repo.ListByCase(ctx, caseID)
}

func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error {
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *AppointmentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
