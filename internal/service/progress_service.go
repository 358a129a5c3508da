package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressService records what athletes report against their plans. Every mutation loads the
// plan, checks the caller owns it, locates the target node, applies the change, re-derives the
// completion of the touched session and writes the whole plan back.
type ProgressService interface {
	SubmitExerciseFeedback(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string, fb plantree.ExerciseFeedback) (*domain.TrainingPlan, error)
	UpdateSessionNotes(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID string, notes plantree.Field[string]) (*domain.TrainingPlan, error)
	// SubmitPerformedSets applies results by set id. Unknown ids are skipped, not rejected.
	SubmitPerformedSets(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string, sets []plantree.SetResult) (*domain.TrainingPlan, error)

	// RequestMediaUploadURL issues an object key for the exercise and a presigned PUT URL for it.
	// The key becomes the exercise mediaRef once submitted as feedback.
	RequestMediaUploadURL(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID, contentType string) (uploadURL, objectKey string, err error)
	// GetMediaDownloadURL returns a presigned GET URL for the exercise media, for its athlete or coach.
	GetMediaDownloadURL(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string) (string, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	plans         planStore
	fileStorage   storage.FileStorage
	metrics       *metrics.Manager
	presignExpiry time.Duration
}

// NewProgressService creates a new instance of progressService. fileStorage may be nil, media
// operations then fail with ErrMediaDisabled.
func NewProgressService(planRepo repository.TrainingPlanRepository, fileStorage storage.FileStorage, m *metrics.Manager, presignExpiry time.Duration) ProgressService {
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}
	return &progressService{
		plans:         planStore{repo: planRepo, metrics: m},
		fileStorage:   fileStorage,
		metrics:       m,
		presignExpiry: presignExpiry,
	}
}

// mutateSession runs apply against one session of a plan owned by the calling athlete, rolls
// the session up and saves the plan.
func (s *progressService) mutateSession(
	ctx context.Context,
	p Principal,
	op string,
	planID primitive.ObjectID,
	sessionID string,
	apply func(plan *domain.TrainingPlan, session *domain.Session) error,
) (plan *domain.TrainingPlan, err error) {
	defer func() {
		s.metrics.ProgressMutation(op, outcome(err))
	}()

	plan, err = s.plans.loadForAthlete(ctx, p, planID)
	if err != nil {
		return nil, err
	}
	session := plantree.FindSession(plan, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err = apply(plan, session); err != nil {
		return nil, err
	}
	plantree.RollupSession(session)

	if err = s.plans.save(ctx, plan); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"planId":    plan.ID.Hex(),
		"sessionId": session.SessionID,
		"completed": session.Completed,
		"op":        op,
	}).Debug("progress recorded")
	return plan, nil
}

func (s *progressService) SubmitExerciseFeedback(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string, fb plantree.ExerciseFeedback) (*domain.TrainingPlan, error) {
	var replacedMedia string
	plan, err := s.mutateSession(ctx, p, metrics.OpExerciseFeedback, planID, sessionID, func(plan *domain.TrainingPlan, session *domain.Session) error {
		exercise := plantree.FindExercise(session, exerciseID)
		if exercise == nil {
			return ErrExerciseNotFound
		}
		if fb.MediaRef.Set {
			if !fb.MediaRef.Null && !storage.IsMediaKeyOf(fb.MediaRef.Value, plan.ID.Hex(), session.SessionID, exercise.ExerciseID) {
				return ErrInvalidMediaRef
			}
			if exercise.MediaRef != nil && (fb.MediaRef.Null || *exercise.MediaRef != fb.MediaRef.Value) {
				replacedMedia = *exercise.MediaRef
			}
		}
		plantree.ApplyExerciseFeedback(exercise, fb)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replacedMedia != "" {
		deleteMedia(ctx, s.fileStorage, []string{replacedMedia})
	}
	return plan, nil
}

func (s *progressService) UpdateSessionNotes(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID string, notes plantree.Field[string]) (*domain.TrainingPlan, error) {
	return s.mutateSession(ctx, p, metrics.OpSessionNotes, planID, sessionID, func(_ *domain.TrainingPlan, session *domain.Session) error {
		if !notes.Set {
			// A missing notes attribute clears them, same as null.
			notes = plantree.Null[string]()
		}
		session.SessionNotes = notes.Ptr(session.SessionNotes)
		return nil
	})
}

func (s *progressService) SubmitPerformedSets(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string, sets []plantree.SetResult) (*domain.TrainingPlan, error) {
	return s.mutateSession(ctx, p, metrics.OpPerformedSets, planID, sessionID, func(plan *domain.TrainingPlan, session *domain.Session) error {
		exercise := plantree.FindExercise(session, exerciseID)
		if exercise == nil {
			return ErrExerciseNotFound
		}
		skipped := plantree.ApplySetResults(exercise, sets)
		if len(skipped) > 0 {
			s.metrics.CounterSkippedSets.Add(float64(len(skipped)))
			log.WithFields(log.Fields{
				"planId":     plan.ID.Hex(),
				"exerciseId": exercise.ExerciseID,
				"setIds":     skipped,
			}).Info("skipped performed sets with unknown ids")
		}
		return nil
	})
}

// locateExercise finds an exercise of a plan the caller may read.
func (s *progressService) locateExercise(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string) (*domain.TrainingPlan, *domain.Session, *domain.Exercise, error) {
	plan, err := s.plans.loadReadable(ctx, p, planID)
	if err != nil {
		return nil, nil, nil, err
	}
	session := plantree.FindSession(plan, sessionID)
	if session == nil {
		return nil, nil, nil, ErrSessionNotFound
	}
	exercise := plantree.FindExercise(session, exerciseID)
	if exercise == nil {
		return nil, nil, nil, ErrExerciseNotFound
	}
	return plan, session, exercise, nil
}

func (s *progressService) RequestMediaUploadURL(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID, contentType string) (string, string, error) {
	if s.fileStorage == nil {
		return "", "", ErrMediaDisabled
	}
	if !p.IsAthlete() {
		return "", "", ErrPlanNotFound
	}
	plan, session, exercise, err := s.locateExercise(ctx, p, planID, sessionID, exerciseID)
	if err != nil {
		return "", "", err
	}

	objectKey, err := storage.MediaObjectKey(plan.ID.Hex(), session.SessionID, exercise.ExerciseID, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return "", "", ErrUnsupportedMediaType
		}
		return "", "", err
	}

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.presignExpiry)
	if err != nil {
		log.WithField("key", objectKey).Errorf("presign upload: %s", err)
		return "", "", ErrMediaURL
	}
	return uploadURL, objectKey, nil
}

func (s *progressService) GetMediaDownloadURL(ctx context.Context, p Principal, planID primitive.ObjectID, sessionID, exerciseID string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrMediaDisabled
	}
	_, _, exercise, err := s.locateExercise(ctx, p, planID, sessionID, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaRef == nil || *exercise.MediaRef == "" {
		return "", ErrMediaNotFound
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, *exercise.MediaRef, s.presignExpiry)
	if err != nil {
		log.WithField("key", *exercise.MediaRef).Errorf("presign download: %s", err)
		return "", ErrMediaURL
	}
	return downloadURL, nil
}
