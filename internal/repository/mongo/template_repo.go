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

// mongoTemplateRepository implements repository.TemplateRepository
type mongoTemplateRepository struct {
	collection *mongo.Collection
}

func NewMongoTemplateRepository(db *mongo.Database) repository.TemplateRepository {
	return &mongoTemplateRepository{
		collection: db.Collection(templateCollectionName),
	}
}

func (r *mongoTemplateRepository) Create(ctx context.Context, template *domain.Template) (primitive.ObjectID, error) {
	if template.Name == "" || template.Type == "" {
		return primitive.NilObjectID, errors.New("template requires name and type")
	}
	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted template ID")
	}
	return insertedID, nil
}

func (r *mongoTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error) {
	var template domain.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// ListActive returns active predefined templates and the coach's own, most used first.
func (r *mongoTemplateRepository) ListActive(ctx context.Context, coachID string) ([]*domain.Template, error) {
	filter := bson.M{
		"isActive": true,
		"$or": bson.A{
			bson.M{"type": domain.TemplatePredefined},
			bson.M{"type": domain.TemplateUserCreated, "createdBy": coachID},
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "usageCount", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []*domain.Template{}
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *mongoTemplateRepository) CountPredefined(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"type": domain.TemplatePredefined})
}

func (r *mongoTemplateRepository) IncrementUsage(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"$inc": bson.M{"usageCount": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

// Deactivate soft deletes a template.
func (r *mongoTemplateRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
}

func (r *mongoTemplateRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func EnsureTemplateIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}
