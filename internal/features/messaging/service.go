package messaging

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MessagingService interface {
	SendSMS(ctx context.Context, caseID, clientID, phone, body string) (*Message, error)
	SendEmail(ctx context.Context, caseID, clientID, email, subject, body string) (*Message, error)
	ListByCase(ctx context.Context, caseID string) ([]Message, error)
}

type MessagingServiceImpl struct {
	Repo   MessageRepository
	SMS    *SMSGateway
	SMTP   *SMTPGateway
	Logger *zap.Logger
}

func NewMessagingService(repo MessageRepository, sms *SMSGateway, smtp *SMTPGateway, logger *zap.Logger) MessagingService {
	return &MessagingServiceImpl{
		Repo:   repo,
		SMS:    sms,
		SMTP:   smtp,
		Logger: logger,
	}
}

// SendSMS records the message, attempts delivery, and keeps the record's
// status in step with the outcome. The record survives even when the
// gateway is down, so nothing silently disappears.
func (s *MessagingServiceImpl) SendSMS(ctx context.Context, caseID, clientID, phone, body string) (*Message, error) {
	m := s.newMessage(caseID, clientID, ChannelSMS, phone, "", body)
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.SMS.Send(phone, body); err != nil {
		s.Logger.Warn("sms delivery failed", zap.String("message_id", m.ID.Hex()), zap.Error(err))
		m.Status = StatusFailed
		m.Error = err.Error()
		_ = s.Repo.SetStatus(ctx, m.ID, StatusFailed, err.Error())
		return m, err
	}

	m.Status = StatusSent
	_ = s.Repo.SetStatus(ctx, m.ID, StatusSent, "")
	return m, nil
}

func (s *MessagingServiceImpl) SendEmail(ctx context.Context, caseID, clientID, email, subject, body string) (*Message, error) {
	m := s.newMessage(caseID, clientID, ChannelEmail, email, subject, body)
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.SMTP.Send(email, subject, body); err != nil {
		s.Logger.Warn("email delivery failed", zap.String("message_id", m.ID.Hex()), zap.Error(err))
		m.Status = StatusFailed
		m.Error = err.Error()
		_ = s.Repo.SetStatus(ctx, m.ID, StatusFailed, err.Error())
		return m, err
	}

	m.Status = StatusSent
	_ = s.Repo.SetStatus(ctx, m.ID, StatusSent, "")
	return m, nil
}

func (s *MessagingServiceImpl) ListByCase(ctx context.Context, caseID string) ([]Message, error) {
	return s.Repo.ListByCase(ctx, caseID)
}

func (s *MessagingServiceImpl) newMessage(caseID, clientID, channel, recipient, subject, body string) *Message {
	m := &Message{
		Channel:   channel,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}
	if oid, err := primitive.ObjectIDFromHex(caseID); err == nil {
		m.CaseID = oid
	}
	if oid, err := primitive.ObjectIDFromHex(clientID); err == nil {
		m.ClientID = oid
	}
	return m
}
