package connectors

import (
	"context"
	"fmt"
	"time"
)

// FixtureConnector serves deterministic datasets for the built-in source
// names. It is both the placeholder backend when no real source is
// configured and the test double for the pipeline.
type FixtureConnector struct{}

func NewFixtureConnector() Connector {
	return &FixtureConnector{}
}

func (c *FixtureConnector) Connect(ctx context.Context, config map[string]interface{}) error {
	return nil
}

func (c *FixtureConnector) Disconnect(ctx context.Context) error { return nil }

func (c *FixtureConnector) TestConnection(ctx context.Context) error { return nil }

func (c *FixtureConnector) GetType() string { return "fixture" }

func (c *FixtureConnector) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	rows, ok := fixtureRows[req.Source]
	if !ok {
		return nil, fmt.Errorf("unknown data source %q", req.Source)
	}

	data := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		copied := make(map[string]interface{}, len(row))
		for k, v := range row {
			copied[k] = v
		}
		data = append(data, copied)
	}

	return &QueryResponse{
		Data:       data,
		TotalCount: int64(len(data)),
		Timestamp:  time.Now(),
	}, nil
}

// Five rows per source, one per weekday label, with a numeric "value"
// column every widget kind can consume.
var fixtureRows = map[string][]map[string]interface{}{
	"staff_performance": {
		{"date": "Mon", "staff": "Amira", "bookings": 12.0, "value": 12.0},
		{"date": "Tue", "staff": "Amira", "bookings": 15.0, "value": 15.0},
		{"date": "Wed", "staff": "Jonas", "bookings": 9.0, "value": 9.0},
		{"date": "Thu", "staff": "Jonas", "bookings": 14.0, "value": 14.0},
		{"date": "Fri", "staff": "Priya", "bookings": 18.0, "value": 18.0},
	},
	"sales_data": {
		{"date": "Mon", "package": "Umrah Standard", "revenue": 4200.0, "value": 4200.0},
		{"date": "Tue", "package": "Umrah Deluxe", "revenue": 6800.0, "value": 6800.0},
		{"date": "Wed", "package": "City Break", "revenue": 1500.0, "value": 1500.0},
		{"date": "Thu", "package": "Umrah Standard", "revenue": 3900.0, "value": 3900.0},
		{"date": "Fri", "package": "Group Tour", "revenue": 7200.0, "value": 7200.0},
	},
	"financial_metrics": {
		{"date": "Mon", "category": "revenue", "amount": 12400.0, "value": 12400.0},
		{"date": "Tue", "category": "revenue", "amount": 9800.0, "value": 9800.0},
		{"date": "Wed", "category": "expenses", "amount": 4300.0, "value": 4300.0},
		{"date": "Thu", "category": "revenue", "amount": 11100.0, "value": 11100.0},
		{"date": "Fri", "category": "expenses", "amount": 3700.0, "value": 3700.0},
	},
	"operational_data": {
		{"date": "Mon", "task": "visa_applications", "count": 23.0, "value": 23.0},
		{"date": "Tue", "task": "hotel_confirmations", "count": 17.0, "value": 17.0},
		{"date": "Wed", "task": "visa_applications", "count": 31.0, "value": 31.0},
		{"date": "Thu", "task": "ticket_issuance", "count": 12.0, "value": 12.0},
		{"date": "Fri", "task": "hotel_confirmations", "count": 26.0, "value": 26.0},
	},
	"customer_data": {
		{"date": "Mon", "segment": "agents", "customers": 8.0, "value": 8.0},
		{"date": "Tue", "segment": "direct", "customers": 14.0, "value": 14.0},
		{"date": "Wed", "segment": "corporate", "customers": 5.0, "value": 5.0},
		{"date": "Thu", "segment": "direct", "customers": 11.0, "value": 11.0},
		{"date": "Fri", "segment": "agents", "customers": 9.0, "value": 9.0},
	},
}

// FixtureSources lists the source names the fixture connector answers for.
func FixtureSources() []string {
	return []string{
		"staff_performance",
		"sales_data",
		"financial_metrics",
		"operational_data",
		"customer_data",
	}
}
