package connectors

import (
	"context"
	"testing"
)

func TestFixtureConnectorQuery(t *testing.T) {
	c := NewFixtureConnector()

	for _, source := range FixtureSources() {
		t.Run(source, func(t *testing.T) {
			resp, err := c.Query(context.Background(), QueryRequest{Source: source})
			if err != nil {
				t.Fatal(err)
			}
			if len(resp.Data) == 0 {
				t.Fatal("no rows returned")
			}
			for _, row := range resp.Data {
				if _, ok := row["date"]; !ok {
					t.Errorf("row %v missing date column", row)
				}
				if _, ok := row["value"]; !ok {
					t.Errorf("row %v missing value column", row)
				}
			}
		})
	}
}

func TestFixtureConnectorUnknownSource(t *testing.T) {
	c := NewFixtureConnector()

	if _, err := c.Query(context.Background(), QueryRequest{Source: "nonexistent"}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestFixtureConnectorCopiesRows(t *testing.T) {
	c := NewFixtureConnector()

	first, err := c.Query(context.Background(), QueryRequest{Source: "sales_data"})
	if err != nil {
		t.Fatal(err)
	}
	first.Data[0]["value"] = -1.0

	second, err := c.Query(context.Background(), QueryRequest{Source: "sales_data"})
	if err != nil {
		t.Fatal(err)
	}
	if second.Data[0]["value"] == -1.0 {
		t.Error("mutating a result leaked into the fixture data")
	}
}
