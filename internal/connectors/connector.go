package connectors

import (
	"context"
	"time"
)

// QueryRequest describes one data pull on behalf of a widget. DateStart and
// DateEnd carry the report configuration's date range; Filters carry the
// open filter map.
type QueryRequest struct {
	Source    string
	DateStart time.Time
	DateEnd   time.Time
	Filters   map[string]interface{}
	Fields    []string
	Limit     int64
}

// QueryResponse represents query results
type QueryResponse struct {
	Data       []map[string]interface{}
	TotalCount int64
	Timestamp  time.Time
}

// Connector interface for all data sources
type Connector interface {
	// Connect establishes connection to the data source
	Connect(ctx context.Context, config map[string]interface{}) error

	// Disconnect closes connection
	Disconnect(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, req QueryRequest) (*QueryResponse, error)

	// TestConnection tests if connection is valid
	TestConnection(ctx context.Context) error

	// GetType returns the connector type
	GetType() string
}
