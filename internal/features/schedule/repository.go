package schedule

import (
	"context"
	"time"

	"go-travelops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *ReportSchedule) error
	GetByID(ctx context.Context, id string) (*ReportSchedule, error)
	List(ctx context.Context) ([]ReportSchedule, error)
	GetActive(ctx context.Context) ([]ReportSchedule, error)
	Update(ctx context.Context, s *ReportSchedule) error
	Delete(ctx context.Context, id string) error
	UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error
}

type ScheduleRepositoryImpl struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		collection: db.DB.Collection("report_schedules"),
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, s *ReportSchedule) error {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (*ReportSchedule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var s ReportSchedule
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepositoryImpl) List(ctx context.Context) ([]ReportSchedule, error) {
	return r.find(ctx, bson.M{})
}

func (r *ScheduleRepositoryImpl) GetActive(ctx context.Context) ([]ReportSchedule, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *ScheduleRepositoryImpl) find(ctx context.Context, filter bson.M) ([]ReportSchedule, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []ReportSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, s *ReportSchedule) error {
	s.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": s.ID},
		bson.M{"$set": s},
	)
	return err
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *ScheduleRepositoryImpl) UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_run": lastRun, "next_run": nextRun, "updated_at": time.Now()}},
	)
	return err
}
