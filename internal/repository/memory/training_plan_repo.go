package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type trainingPlanRepository struct {
	store *Store
}

func NewTrainingPlanRepository(store *Store) repository.TrainingPlanRepository {
	return &trainingPlanRepository{store: store}
}

func (r *trainingPlanRepository) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.AthleteID == primitive.NilObjectID || plan.CoachID == "" || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires athleteId, coachId, and name")
	}
	plan.ID = primitive.NewObjectID()
	plan.Version = 1
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	raw, err := encode(plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.plans[plan.ID] = raw
	return plan.ID, nil
}

func (r *trainingPlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.store.mu.RLock()
	raw, ok := r.store.plans[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return decodePlan(raw)
}

func (r *trainingPlanRepository) GetByCoachID(_ context.Context, coachID string) ([]*domain.TrainingPlan, error) {
	return r.filter(func(p *domain.TrainingPlan) bool { return p.CoachID == coachID })
}

func (r *trainingPlanRepository) GetByAthleteID(_ context.Context, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error) {
	return r.filter(func(p *domain.TrainingPlan) bool { return p.AthleteID == athleteID })
}

func (r *trainingPlanRepository) GetByCoachAndAthleteID(_ context.Context, coachID string, athleteID primitive.ObjectID) ([]*domain.TrainingPlan, error) {
	return r.filter(func(p *domain.TrainingPlan) bool { return p.CoachID == coachID && p.AthleteID == athleteID })
}

// filter returns matching plans, newest first.
func (r *trainingPlanRepository) filter(match func(*domain.TrainingPlan) bool) ([]*domain.TrainingPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	plans := []*domain.TrainingPlan{}
	for _, raw := range r.store.plans {
		p, err := decodePlan(raw)
		if err != nil {
			return nil, err
		}
		if match(p) {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID.Hex() > plans[j].ID.Hex()
		}
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	return plans, nil
}

func (r *trainingPlanRepository) Replace(_ context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("training plan ID is required for replace")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raw, ok := r.store.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored, err := decodePlan(raw)
	if err != nil {
		return err
	}
	if stored.Version != plan.Version {
		return repository.ErrVersionConflict
	}

	next := *plan
	next.Version = plan.Version + 1
	next.UpdatedAt = time.Now().UTC()
	if raw, err = encode(&next); err != nil {
		return err
	}
	r.store.plans[plan.ID] = raw

	plan.Version = next.Version
	plan.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *trainingPlanRepository) Delete(_ context.Context, planID primitive.ObjectID, coachID string) error {
	if planID == primitive.NilObjectID || coachID == "" {
		return errors.New("plan ID and coach ID are required for deletion")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raw, ok := r.store.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	p, err := decodePlan(raw)
	if err != nil {
		return err
	}
	if p.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(r.store.plans, planID)
	return nil
}
