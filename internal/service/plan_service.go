package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePlanInput is a new plan authored by the calling coach.
type CreatePlanInput struct {
	AthleteID   primitive.ObjectID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Sessions    []plantree.SessionInput
}

// UpdatePlanInput is a partial plan edit. Unset fields keep their stored value.
type UpdatePlanInput struct {
	// Version, when given, must match the stored version or the update is rejected.
	Version     *int64
	Name        plantree.Field[string]
	Description plantree.Field[string]
	StartDate   plantree.Field[time.Time]
	EndDate     plantree.Field[time.Time]
	Sessions    plantree.Field[[]plantree.SessionInput]
}

type PlanService interface {
	CreatePlan(ctx context.Context, p Principal, in CreatePlanInput) (*domain.TrainingPlan, error)
	UpdatePlan(ctx context.Context, p Principal, planID primitive.ObjectID, in UpdatePlanInput) (*domain.TrainingPlan, error)
	GetPlan(ctx context.Context, p Principal, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	// ListPlans returns the caller's plans: authored ones for a coach (optionally for one
	// athlete), assigned ones for an athlete.
	ListPlans(ctx context.Context, p Principal, athleteID *primitive.ObjectID) ([]*domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, p Principal, planID primitive.ObjectID) error
	ConvertToTemplate(ctx context.Context, p Principal, planID primitive.ObjectID, name, description string) (*domain.Template, error)
	RemoveTemplateStatus(ctx context.Context, p Principal, planID primitive.ObjectID) (*domain.TrainingPlan, error)
}

// planService implements the PlanService interface.
type planService struct {
	plans        planStore
	userRepo     repository.UserRepository
	templateRepo repository.TemplateRepository
	fileStorage  storage.FileStorage
	metrics      *metrics.Manager
	newID        plantree.IDGenerator
}

// NewPlanService creates a new instance of planService. fileStorage may be nil when media
// storage is not configured.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	userRepo repository.UserRepository,
	templateRepo repository.TemplateRepository,
	fileStorage storage.FileStorage,
	m *metrics.Manager,
	newID plantree.IDGenerator,
) PlanService {
	if newID == nil {
		newID = plantree.NewID
	}
	return &planService{
		plans:        planStore{repo: planRepo, metrics: m},
		userRepo:     userRepo,
		templateRepo: templateRepo,
		fileStorage:  fileStorage,
		metrics:      m,
		newID:        newID,
	}
}

func validateDates(start, end time.Time) error {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// assignableAthlete checks that the athlete exists and is not linked to another coach.
func assignableAthlete(ctx context.Context, users repository.UserRepository, p Principal, athleteID primitive.ObjectID) error {
	athlete, err := users.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAthleteNotFound
		}
		return err
	}
	if !athlete.IsAthlete() || (athlete.CoachID != "" && athlete.CoachID != p.CoachID) {
		return ErrAthleteNotFound
	}
	return nil
}

// CreatePlan normalizes the authored tree and stores it as a new plan.
func (s *planService) CreatePlan(ctx context.Context, p Principal, in CreatePlanInput) (*domain.TrainingPlan, error) {
	if !p.IsCoach() {
		return nil, fmt.Errorf("%w: only coaches can create plans", ErrUnauthorized)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.AthleteID == primitive.NilObjectID {
		return nil, fmt.Errorf("%w: athleteId and name are required", ErrInvalidInput)
	}
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := assignableAthlete(ctx, s.userRepo, p, in.AthleteID); err != nil {
		return nil, err
	}

	plan := &domain.TrainingPlan{
		AthleteID:   in.AthleteID,
		CoachID:     p.CoachID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		Sessions:    plantree.Build(s.newID, in.Sessions),
	}

	if _, err := s.plans.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.metrics.CounterPlansCreated.Inc()

	log.WithFields(log.Fields{
		"planId":   plan.ID.Hex(),
		"coachId":  plan.CoachID,
		"sessions": len(plan.Sessions),
	}).Info("training plan created")

	return plan, nil
}

// UpdatePlan merges a partial edit into the stored plan and saves the whole document.
func (s *planService) UpdatePlan(ctx context.Context, p Principal, planID primitive.ObjectID, in UpdatePlanInput) (*domain.TrainingPlan, error) {
	plan, err := s.plans.loadForCoach(ctx, p, planID)
	if err != nil {
		return nil, err
	}
	if in.Version != nil && *in.Version != plan.Version {
		return nil, ErrPlanModified
	}

	plan.Name = strings.TrimSpace(in.Name.Or(plan.Name))
	if plan.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if in.Description.Set {
		plan.Description = in.Description.Value
	}
	plan.StartDate = in.StartDate.Or(plan.StartDate).UTC()
	plan.EndDate = in.EndDate.Or(plan.EndDate).UTC()
	if err := validateDates(plan.StartDate, plan.EndDate); err != nil {
		return nil, err
	}

	removedMedia := map[string]struct{}{}
	if in.Sessions.Set {
		for _, ref := range planMedia(plan) {
			removedMedia[ref] = struct{}{}
		}
		plan.Sessions = plantree.Merge(s.newID, plan.Sessions, in.Sessions.Value)
		for _, ref := range plan.MediaRefs() {
			delete(removedMedia, ref)
		}
	}

	if err := s.plans.save(ctx, plan); err != nil {
		return nil, err
	}

	if len(removedMedia) > 0 {
		keys := make([]string, 0, len(removedMedia))
		for key := range removedMedia {
			keys = append(keys, key)
		}
		deleteMedia(ctx, s.fileStorage, keys)
	}

	log.WithFields(log.Fields{"planId": plan.ID.Hex(), "version": plan.Version}).Info("training plan updated")
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, p Principal, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	return s.plans.loadReadable(ctx, p, planID)
}

func (s *planService) ListPlans(ctx context.Context, p Principal, athleteID *primitive.ObjectID) ([]*domain.TrainingPlan, error) {
	switch {
	case p.IsCoach() && athleteID != nil:
		return s.plans.repo.GetByCoachAndAthleteID(ctx, p.CoachID, *athleteID)
	case p.IsCoach():
		return s.plans.repo.GetByCoachID(ctx, p.CoachID)
	case p.IsAthlete():
		return s.plans.repo.GetByAthleteID(ctx, p.UserID)
	default:
		return nil, fmt.Errorf("%w: unknown caller role", ErrUnauthorized)
	}
}

// DeletePlan removes the plan and, best effort, the media stored for it.
func (s *planService) DeletePlan(ctx context.Context, p Principal, planID primitive.ObjectID) error {
	plan, err := s.plans.loadForCoach(ctx, p, planID)
	if err != nil {
		return err
	}
	if err := s.plans.repo.Delete(ctx, plan.ID, p.CoachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	deleteMedia(ctx, s.fileStorage, planMedia(plan))

	log.WithField("planId", plan.ID.Hex()).Info("training plan deleted")
	return nil
}

// ConvertToTemplate publishes the plan's session structure as a template of the coach and
// marks the plan as its source.
func (s *planService) ConvertToTemplate(ctx context.Context, p Principal, planID primitive.ObjectID, name, description string) (*domain.Template, error) {
	plan, err := s.plans.loadForCoach(ctx, p, planID)
	if err != nil {
		return nil, err
	}
	if plan.IsTemplate {
		return nil, fmt.Errorf("%w: plan is already a template", ErrBadRequest)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = plan.Name
	}

	template := &domain.Template{
		Name:           name,
		Description:    description,
		Type:           domain.TemplateUserCreated,
		CreatedBy:      p.CoachID,
		OriginalPlanID: &plan.ID,
		Sessions:       plantree.StripProgress(plan.Sessions),
		IsActive:       true,
	}
	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}

	plan.IsTemplate = true
	plan.TemplateID = &templateID
	if err := s.plans.save(ctx, plan); err != nil {
		// Roll back the catalog entry so the plan can be converted again.
		if dErr := s.templateRepo.Deactivate(ctx, templateID); dErr != nil {
			log.WithField("templateId", templateID.Hex()).Errorf("deactivate orphaned template: %s", dErr)
		}
		return nil, err
	}

	log.WithFields(log.Fields{"planId": plan.ID.Hex(), "templateId": templateID.Hex()}).Info("plan converted to template")
	return template, nil
}

// RemoveTemplateStatus unlinks the plan from its template and retires the template.
func (s *planService) RemoveTemplateStatus(ctx context.Context, p Principal, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.plans.loadForCoach(ctx, p, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsTemplate {
		return plan, nil
	}

	if plan.TemplateID != nil {
		err := s.templateRepo.Deactivate(ctx, *plan.TemplateID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	plan.IsTemplate = false
	plan.TemplateID = nil
	if err := s.plans.save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
