package emails

import (
	"context"
	"errors"
	"fmt"

	"go-travelops/internal/features/pipeline"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// emailStore is the slice of Repository the delivery path needs.
type emailStore interface {
	Create(ctx context.Context, email *Email) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status EmailStatus, errorMsg string) error
}

type Service struct {
	repo   emailStore
	smtp   SMTPConfig
	from   string
	send   func(cfg SMTPConfig, email *Email) error
	logger *zap.Logger
}

func NewService(repo *Repository, smtp SMTPConfig, from string, logger *zap.Logger) *Service {
	return &Service{repo: repo, smtp: smtp, from: from, send: SendSMTP, logger: logger}
}

// Deliver sends a generated report artifact to the recipient list. It is
// synchronous: the scheduler wants to know delivery failed so it can log
// and retry on the next run. Every attempt is persisted, with the outcome
// recorded on the stored message.
func (s *Service) Deliver(ctx context.Context, recipients []string, artifact *pipeline.ExportArtifact) error {
	if artifact == nil {
		return errors.New("no artifact to deliver")
	}
	if len(recipients) == 0 {
		return errors.New("recipient required")
	}

	email := &Email{
		From:    s.from,
		To:      recipients,
		Subject: fmt.Sprintf("Scheduled report: %s", artifact.Filename),
		HtmlBody: fmt.Sprintf(
			"<p>Your scheduled report is attached.</p><p>File: %s</p>",
			artifact.Filename,
		),
		Attachments: []Attachment{{
			Filename:    artifact.Filename,
			ContentType: artifact.ContentType,
			Data:        artifact.Data,
		}},
		Status: EmailQueued,
	}

	if err := s.repo.Create(ctx, email); err != nil {
		return err
	}

	if err := s.send(s.smtp, email); err != nil {
		_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailFailed, err.Error())
		return err
	}

	if err := s.repo.UpdateStatus(ctx, email.ID, EmailSent, ""); err != nil {
		s.logger.Error("failed to record email status", zap.Error(err))
	}

	s.logger.Info("report delivered",
		zap.String("filename", artifact.Filename),
		zap.Int("recipients", len(recipients)))
	return nil
}
