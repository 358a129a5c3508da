// internal/repository/mongo/training_plan_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTrainingPlanRepository implements repository.TrainingPlanRepository
type mongoTrainingPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingPlanRepository creates a new TrainingPlan repository.
func NewMongoTrainingPlanRepository(db *mongo.Database) repository.TrainingPlanRepository {
	return &mongoTrainingPlanRepository{
		collection: db.Collection(trainingPlanCollectionName),
	}
}

// Create inserts a new training plan at version 1.
func (r *mongoTrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.AthleteID == primitive.NilObjectID || plan.CoachID == "" || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires athleteId, coachId, and name")
	}
	plan.ID = primitive.NewObjectID()
	plan.Version = 1
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training plan by its ID.
func (r *mongoTrainingPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mongoTrainingPlanRepository) GetByCoachID(ctx context.Context, coachID string) ([]*domain.TrainingPlan, error) {
	return r.find(ctx, bson.M{"coachId": coachID})
}

func (r *mongoTrainingPlanRepository) GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error) {
	return r.find(ctx, bson.M{"athleteId": athleteID})
}

// GetByCoachAndAthleteID retrieves all plans for a specific athlete created by a specific coach.
func (r *mongoTrainingPlanRepository) GetByCoachAndAthleteID(ctx context.Context, coachID string, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error) {
	return r.find(ctx, bson.M{"coachId": coachID, "athleteId": athleteID})
}

// find returns matching plans, newest first. No match is an empty slice, not an error.
func (r *mongoTrainingPlanRepository) find(ctx context.Context, filter bson.M) ([]*domain.TrainingPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []*domain.TrainingPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Replace writes the whole document if the stored version still equals plan.Version.
// On success plan.Version and plan.UpdatedAt reflect the stored document.
func (r *mongoTrainingPlanRepository) Replace(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("training plan ID is required for replace")
	}

	expected := plan.Version
	next := *plan
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID, "version": expected}, &next)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either gone or moved on, tell the two apart for the caller.
		n, err := r.collection.CountDocuments(ctx, bson.M{"_id": plan.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}

	plan.Version = next.Version
	plan.UpdatedAt = next.UpdatedAt
	return nil
}

// Delete removes a plan owned by the coach.
func (r *mongoTrainingPlanRepository) Delete(ctx context.Context, planID primitive.ObjectID, coachID string) error {
	if planID == primitive.NilObjectID || coachID == "" {
		return errors.New("plan ID and coach ID are required for deletion")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": planID, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Missing and not owned look the same from here.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingPlanIndexes creates necessary indexes. Call during startup.
func EnsureTrainingPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Main query pattern: plans of an athlete authored by a coach
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "athleteId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
