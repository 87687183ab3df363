package emails

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// Attachment is a file carried inline with the message. Report deliveries
// attach the export artifact.
type Attachment struct {
	Filename    string `bson:"filename" json:"filename"`
	ContentType string `bson:"contentType" json:"contentType"`
	Data        []byte `bson:"data" json:"-"`
}

type Email struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From        string             `bson:"from" json:"from"`
	To          []string           `bson:"to" json:"to"`
	Subject     string             `bson:"subject" json:"subject"`
	HtmlBody    string             `bson:"htmlBody,omitempty" json:"htmlBody,omitempty"`
	Attachments []Attachment       `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Status      EmailStatus        `bson:"status" json:"status"`
	ScheduleID  string             `bson:"scheduleId,omitempty" json:"scheduleId,omitempty"`
	ErrorMsg    string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	SentAt      *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}
