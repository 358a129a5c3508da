package service

import (
	"context"
	"errors"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// planStore wraps the plan repository with the service error vocabulary.
type planStore struct {
	repo    repository.TrainingPlanRepository
	metrics *metrics.Manager
}

func (s planStore) load(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// loadReadable loads a plan the caller may see. Plans of others are reported as not found.
func (s planStore) loadReadable(ctx context.Context, p Principal, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.canRead(plan) {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// loadForCoach loads a plan owned by the calling coach.
func (s planStore) loadForCoach(ctx context.Context, p Principal, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsCoach() || !plan.IsOwnedByCoach(p.CoachID) {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// loadForAthlete loads a plan assigned to the calling athlete.
func (s planStore) loadForAthlete(ctx context.Context, p Principal, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAthlete() || !plan.IsOwnedByAthlete(p.UserID) {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// save writes the whole plan guarded by its version.
func (s planStore) save(ctx context.Context, plan *domain.TrainingPlan) error {
	err := s.repo.Replace(ctx, plan)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrVersionConflict):
		s.metrics.CounterVersionConflicts.Inc()
		log.WithFields(log.Fields{"planId": plan.ID.Hex(), "version": plan.Version}).Warn("plan write lost a version race")
		return ErrPlanModified
	case errors.Is(err, repository.ErrNotFound):
		return ErrPlanNotFound
	default:
		return err
	}
}

// planMedia returns the media references of the plan that point at objects issued for it.
// References a coach typed in by hand are never deleted.
func planMedia(plan *domain.TrainingPlan) []string {
	var keys []string
	for _, ref := range plan.MediaRefs() {
		if storage.IsMediaKeyOfPlan(ref, plan.ID.Hex()) {
			keys = append(keys, ref)
		}
	}
	return keys
}

// deleteMedia removes stored objects. Failures are logged and otherwise ignored.
func deleteMedia(ctx context.Context, fs storage.FileStorage, keys []string) {
	if fs == nil {
		return
	}
	for _, key := range keys {
		if err := fs.DeleteObject(ctx, key); err != nil {
			log.WithField("key", key).Warnf("orphaned media object: %s", err)
		}
	}
}
