package builder

import (
	"context"
	"time"

	"go-travelops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DesignRepository interface {
	Create(ctx context.Context, design *ReportDesign) error
	Get(ctx context.Context, id string) (*ReportDesign, error)
	List(ctx context.Context) ([]ReportDesign, error)
	Update(ctx context.Context, id string, design *ReportDesign) error
	Delete(ctx context.Context, id string) error
}

type DesignRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDesignRepository(db *database.MongodbDB) DesignRepository {
	return &DesignRepositoryImpl{
		Collection: db.DB.Collection("report_designs"),
	}
}

func (r *DesignRepositoryImpl) Create(ctx context.Context, design *ReportDesign) error {
	design.CreatedAt = time.Now()
	design.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, design)
	return err
}

func (r *DesignRepositoryImpl) Get(ctx context.Context, id string) (*ReportDesign, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var design ReportDesign
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&design)
	if err != nil {
		return nil, err
	}
	return &design, nil
}

func (r *DesignRepositoryImpl) List(ctx context.Context) ([]ReportDesign, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var designs []ReportDesign
	if err := cursor.All(ctx, &designs); err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *DesignRepositoryImpl) Update(ctx context.Context, id string, design *ReportDesign) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	design.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":       design.Name,
			"widgets":    design.Widgets,
			"config":     design.Config,
			"updated_at": design.UpdatedAt,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *DesignRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
