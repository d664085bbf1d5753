package scheduler

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/features/appointment"
	"go-casework/internal/features/casefile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	reminderSchedule = "*/15 * * * *"
	reminderWindow   = 24 * time.Hour
)

// ReminderScheduler sweeps upcoming appointments and fires the
// appointment_reminder event for each one, once. Rules decide what the
// reminder actually does (SMS, note, task).
type ReminderScheduler struct {
	cron   *cron.Cron
	appts  appointment.AppointmentRepository
	rules  casefile.AutomationTrigger
	logger *zap.Logger
}

func NewReminderScheduler(appts appointment.AppointmentRepository, rules casefile.AutomationTrigger, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		cron:   cron.New(),
		appts:  appts,
		rules:  rules,
		logger: logger,
	}
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(reminderSchedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", reminderSchedule))
	return nil
}

func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *ReminderScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	due, err := s.appts.ListDueForReminder(ctx, now, now.Add(reminderWindow))
	if err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}

	for i := range due {
		appt := &due[i]

		// each appointment runs under its own centre's scope
		centreCtx := context.WithValue(ctx, common_models.CentreIDKey, appt.CentreID.Hex())

		err := s.rules.TriggerCaseEvent(centreCtx, "appointment_reminder",
			appt.CaseID.Hex(), appt.ClientID.Hex(), map[string]interface{}{
				"appointment_id": appt.ID.Hex(),
				"scheduled_at":   appt.ScheduledAt.Format(time.RFC3339),
				"location":       appt.Location,
				"purpose":        appt.Purpose,
			})
		if err != nil {
			s.logger.Warn("appointment reminder dispatch failed",
				zap.String("appointment_id", appt.ID.Hex()), zap.Error(err))
			continue
		}

		if err := s.appts.MarkReminded(centreCtx, appt.ID); err != nil {
			s.logger.Warn("failed to mark appointment reminded",
				zap.String("appointment_id", appt.ID.Hex()), zap.Error(err))
		}
	}

	if len(due) > 0 {
		s.logger.Info("reminder sweep complete", zap.Int("reminded", len(due)))
	}
}
