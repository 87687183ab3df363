package datasource

import (
	"context"
	"time"

	"go-travelops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DataSourceRepository interface {
	Create(ctx context.Context, ds *DataSource) error
	Get(ctx context.Context, id string) (*DataSource, error)
	FindByName(ctx context.Context, name string) (*DataSource, error)
	List(ctx context.Context) ([]DataSource, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type DataSourceRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDataSourceRepository(db *database.MongodbDB) DataSourceRepository {
	return &DataSourceRepositoryImpl{
		Collection: db.DB.Collection("data_sources"),
	}
}

func (r *DataSourceRepositoryImpl) Create(ctx context.Context, ds *DataSource) error {
	ds.CreatedAt = time.Now()
	ds.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, ds)
	return err
}

func (r *DataSourceRepositoryImpl) Get(ctx context.Context, id string) (*DataSource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var ds DataSource
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *DataSourceRepositoryImpl) FindByName(ctx context.Context, name string) (*DataSource, error) {
	var ds DataSource
	if err := r.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *DataSourceRepositoryImpl) List(ctx context.Context) ([]DataSource, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sources []DataSource
	if err := cursor.All(ctx, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *DataSourceRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	updates["updated_at"] = time.Now()
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	return err
}

func (r *DataSourceRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
