package repository

import (
	"context"

	"alcyxob/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks alcyxob/coaching-app/internal/repository UserRepository,TrainingPlanRepository,TemplateRepository

// Error constants for repository layer
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("duplicate key")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	// GetCoachByCoachID returns the coach owning a coach code.
	GetCoachByCoachID(ctx context.Context, coachID string) (*domain.User, error)
	// GetAthletesByCoachID returns the athletes linked to a coach code.
	GetAthletesByCoachID(ctx context.Context, coachID string) ([]domain.User, error)
}

// TrainingPlanRepository defines the interface for interacting with training plan documents.
//
// Plans are written whole. Replace is a compare-and-swap on Version: it succeeds only while the
// stored version equals plan.Version and bumps it by one, otherwise ErrVersionConflict.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByCoachID(ctx context.Context, coachID string) ([]*domain.TrainingPlan, error)
	GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error)
	GetByCoachAndAthleteID(ctx context.Context, coachID string, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error)
	Replace(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, planID primitive.ObjectID, coachID string) error
}

// TemplateRepository defines the interface for the template catalog.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error)
	// ListActive returns predefined templates plus the active templates created by the coach.
	ListActive(ctx context.Context, coachID string) ([]*domain.Template, error)
	CountPredefined(ctx context.Context) (int64, error)
	IncrementUsage(ctx context.Context, id primitive.ObjectID) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}
