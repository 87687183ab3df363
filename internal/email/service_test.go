package emails

import (
	"context"
	"errors"
	"testing"

	"go-travelops/internal/features/pipeline"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type storeSpy struct {
	created *Email
	status  EmailStatus
	errMsg  string
}

func (s *storeSpy) Create(ctx context.Context, email *Email) error {
	email.ID = primitive.NewObjectID()
	s.created = email
	return nil
}

func (s *storeSpy) UpdateStatus(ctx context.Context, id primitive.ObjectID, status EmailStatus, errorMsg string) error {
	s.status = status
	s.errMsg = errorMsg
	return nil
}

func testArtifact() *pipeline.ExportArtifact {
	return &pipeline.ExportArtifact{
		Data:        []byte("report"),
		Filename:    "sales_report_2026-03-15.csv",
		ContentType: "text/csv",
	}
}

func TestDeliverRecordsSentStatus(t *testing.T) {
	store := &storeSpy{}
	svc := &Service{
		repo:   store,
		from:   "reports@travelops.example",
		send:   func(cfg SMTPConfig, email *Email) error { return nil },
		logger: zap.NewNop(),
	}

	err := svc.Deliver(context.Background(), []string{"ops@example.com"}, testArtifact())
	if err != nil {
		t.Fatal(err)
	}

	if store.created == nil {
		t.Fatal("delivery was not persisted")
	}
	if store.created.From != "reports@travelops.example" {
		t.Errorf("from = %q", store.created.From)
	}
	if len(store.created.Attachments) != 1 || store.created.Attachments[0].Filename != "sales_report_2026-03-15.csv" {
		t.Errorf("attachments = %+v", store.created.Attachments)
	}
	if store.status != EmailSent {
		t.Errorf("status = %q, want %q", store.status, EmailSent)
	}
}

func TestDeliverRecordsFailedStatus(t *testing.T) {
	store := &storeSpy{}
	svc := &Service{
		repo:   store,
		from:   "reports@travelops.example",
		send:   func(cfg SMTPConfig, email *Email) error { return errors.New("relay refused") },
		logger: zap.NewNop(),
	}

	err := svc.Deliver(context.Background(), []string{"ops@example.com"}, testArtifact())
	if err == nil {
		t.Fatal("expected error")
	}

	if store.status != EmailFailed {
		t.Errorf("status = %q, want %q", store.status, EmailFailed)
	}
	if store.errMsg != "relay refused" {
		t.Errorf("error message = %q", store.errMsg)
	}
}

func TestDeliverRejectsMissingInput(t *testing.T) {
	svc := &Service{repo: &storeSpy{}, logger: zap.NewNop()}

	if err := svc.Deliver(context.Background(), []string{"ops@example.com"}, nil); err == nil {
		t.Error("nil artifact accepted")
	}
	if err := svc.Deliver(context.Background(), nil, testArtifact()); err == nil {
		t.Error("empty recipient list accepted")
	}
}
