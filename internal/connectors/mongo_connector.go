package connectors

import (
	"context"
	"fmt"
	"time"

	common_models "go-travelops/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConnector queries collections of the service's own database. Source
// names map one-to-one onto collection names (bookings, packages,
// hotel_inventory and so on).
type MongoConnector struct {
	db *mongo.Database
}

func NewMongoConnector(db *mongo.Database) Connector {
	return &MongoConnector{db: db}
}

func (c *MongoConnector) Connect(ctx context.Context, config map[string]interface{}) error {
	return nil
}

func (c *MongoConnector) Disconnect(ctx context.Context) error { return nil }

func (c *MongoConnector) TestConnection(ctx context.Context) error {
	return c.db.Client().Ping(ctx, nil)
}

func (c *MongoConnector) GetType() string { return "internal" }

func (c *MongoConnector) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if req.Source == "" {
		return nil, fmt.Errorf("source collection is required")
	}

	filter := bson.M{}
	for _, f := range common_models.FiltersFromMap(req.Filters) {
		switch f.Operator {
		case "ne":
			filter[f.Field] = bson.M{"$ne": f.Value}
		case "gt":
			filter[f.Field] = bson.M{"$gt": f.Value}
		case "gte":
			filter[f.Field] = bson.M{"$gte": f.Value}
		case "lt":
			filter[f.Field] = bson.M{"$lt": f.Value}
		case "lte":
			filter[f.Field] = bson.M{"$lte": f.Value}
		case "contains":
			filter[f.Field] = bson.M{"$regex": f.Value, "$options": "i"}
		case "in":
			filter[f.Field] = bson.M{"$in": f.Value}
		default:
			filter[f.Field] = f.Value
		}
	}
	if !req.DateStart.IsZero() || !req.DateEnd.IsZero() {
		dateFilter := bson.M{}
		if !req.DateStart.IsZero() {
			dateFilter["$gte"] = req.DateStart
		}
		if !req.DateEnd.IsZero() {
			// End of day, so a (today, today) range still matches today's rows
			dateFilter["$lte"] = req.DateEnd.Add(24*time.Hour - time.Nanosecond)
		}
		filter["created_at"] = dateFilter
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10000
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.M{"created_at": -1})
	if len(req.Fields) > 0 {
		projection := bson.M{}
		for _, f := range req.Fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}

	cursor, err := c.db.Collection(req.Source).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", req.Source, err)
	}
	defer cursor.Close(ctx)

	var data []map[string]interface{}
	if err := cursor.All(ctx, &data); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return &QueryResponse{
		Data:       data,
		TotalCount: int64(len(data)),
		Timestamp:  time.Now(),
	}, nil
}
