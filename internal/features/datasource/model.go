package datasource

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DataSourceType constants
const (
	DataSourceTypeInternal   = "internal"
	DataSourceTypeFixture    = "fixture"
	DataSourceTypePostgreSQL = "postgresql"
	DataSourceTypeMySQL      = "mysql"
)

// DataSource represents a registered data source. Name is what widgets
// reference (staff_performance, sales_data, ...); Type selects the
// connector; Config holds connector settings (SQL hosts, credentials,
// collection overrides).
type DataSource struct {
	ID          primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Name        string                 `json:"name" bson:"name"`
	Type        string                 `json:"type" bson:"type"`
	Description string                 `json:"description,omitempty" bson:"description,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty" bson:"config,omitempty"`
	IsActive    bool                   `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" bson:"updated_at"`
}
