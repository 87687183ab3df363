package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	common_models "go-travelops/internal/common/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// ExternalDBConnector connects to external SQL databases the agency already
// runs (accounting, legacy booking systems).
type ExternalDBConnector struct {
	dbType string // "postgresql" or "mysql"
	db     *sql.DB
}

// NewExternalDBConnector creates a new external database connector
func NewExternalDBConnector(dbType string) Connector {
	return &ExternalDBConnector{
		dbType: dbType,
	}
}

// Connect establishes connection to external database
func (c *ExternalDBConnector) Connect(ctx context.Context, config map[string]interface{}) error {
	connStr, err := c.buildConnectionString(config)
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	driver := c.dbType
	if c.dbType == "postgresql" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	c.db = db
	return nil
}

// Disconnect closes the database connection
func (c *ExternalDBConnector) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *ExternalDBConnector) TestConnection(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database connection not established")
	}
	return c.db.PingContext(ctx)
}

func (c *ExternalDBConnector) GetType() string { return c.dbType }

// Query executes a query against the external database
func (c *ExternalDBConnector) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query, args := c.buildSQLQuery(req)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	data, err := c.rowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to process query results: %w", err)
	}

	return &QueryResponse{
		Data:       data,
		TotalCount: int64(len(data)),
		Timestamp:  time.Now(),
	}, nil
}

func (c *ExternalDBConnector) buildConnectionString(config map[string]interface{}) (string, error) {
	host, _ := config["host"].(string)
	database, _ := config["database"].(string)
	username, _ := config["username"].(string)
	password, _ := config["password"].(string)

	port := 5432
	if c.dbType == "mysql" {
		port = 3306
	}
	if p, ok := config["port"].(float64); ok {
		port = int(p)
	} else if p, ok := config["port"].(int); ok {
		port = p
	}

	if host == "" || database == "" {
		return "", fmt.Errorf("host and database are required")
	}

	if c.dbType == "postgresql" {
		return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
			host, port, database, username, password), nil
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		username, password, host, port, database), nil
}

func (c *ExternalDBConnector) buildSQLQuery(req QueryRequest) (string, []interface{}) {
	columns := "*"
	if len(req.Fields) > 0 {
		columns = strings.Join(req.Fields, ", ")
	}

	var conditions []string
	var args []interface{}

	placeholder := func() string {
		if c.dbType == "postgresql" {
			return fmt.Sprintf("$%d", len(args))
		}
		return "?"
	}

	for _, f := range common_models.FiltersFromMap(req.Filters) {
		op := "="
		switch f.Operator {
		case "ne":
			op = "<>"
		case "gt":
			op = ">"
		case "gte":
			op = ">="
		case "lt":
			op = "<"
		case "lte":
			op = "<="
		}
		args = append(args, f.Value)
		conditions = append(conditions, fmt.Sprintf("%s %s %s", f.Field, op, placeholder()))
	}
	if !req.DateStart.IsZero() {
		args = append(args, req.DateStart)
		conditions = append(conditions, fmt.Sprintf("created_at >= %s", placeholder()))
	}
	if !req.DateEnd.IsZero() {
		args = append(args, req.DateEnd.Add(24*time.Hour-time.Nanosecond))
		conditions = append(conditions, fmt.Sprintf("created_at <= %s", placeholder()))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", columns, req.Source)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10000
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	return query, args
}

func (c *ExternalDBConnector) rowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
