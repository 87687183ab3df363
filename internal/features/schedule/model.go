package schedule

import (
	"time"

	"go-travelops/internal/features/builder"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportSchedule is a persisted recurring delivery: which design to
// generate, how often, and who receives the artifact.
type ReportSchedule struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	DesignID   string               `json:"design_id" bson:"design_id"`
	Frequency  builder.Frequency    `json:"frequency" bson:"frequency"`
	Recipients []string             `json:"recipients" bson:"recipients"`
	Format     builder.OutputFormat `json:"format" bson:"format"`
	Active     bool                 `json:"active" bson:"active"`
	LastRun    *time.Time           `json:"last_run,omitempty" bson:"last_run,omitempty"`
	NextRun    *time.Time           `json:"next_run,omitempty" bson:"next_run,omitempty"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}

// Confirmation is the acknowledgement returned when a schedule is
// accepted.
type Confirmation struct {
	Frequency      builder.Frequency `json:"frequency"`
	RecipientCount int               `json:"recipient_count"`
}

// CronExpression maps a delivery frequency onto a standard 5-field cron
// spec. Deliveries fire at 07:00 so the report is ready when the office
// opens.
func CronExpression(f builder.Frequency) string {
	switch f {
	case builder.FrequencyWeekly:
		return "0 7 * * 1"
	case builder.FrequencyMonthly:
		return "0 7 1 * *"
	default:
		return "0 7 * * *"
	}
}
