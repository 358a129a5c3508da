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

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanFromTemplateInput describes the plan to materialize from a template. An empty name
// falls back to the template name.
type PlanFromTemplateInput struct {
	AthleteID   primitive.ObjectID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

type TemplateService interface {
	// SeedPredefined stores the system templates when none exist yet.
	SeedPredefined(ctx context.Context) error
	ListTemplates(ctx context.Context, p Principal) ([]*domain.Template, error)
	GetTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID) (*domain.Template, error)
	// DeleteTemplate retires a template of the coach and unmarks the plan it was made from.
	DeleteTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID) error
	CreatePlanFromTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID, in PlanFromTemplateInput) (*domain.TrainingPlan, error)
}

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
	plans        planStore
	userRepo     repository.UserRepository
	metrics      *metrics.Manager
	newID        plantree.IDGenerator
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	planRepo repository.TrainingPlanRepository,
	userRepo repository.UserRepository,
	m *metrics.Manager,
	newID plantree.IDGenerator,
) TemplateService {
	if newID == nil {
		newID = plantree.NewID
	}
	return &templateService{
		templateRepo: templateRepo,
		plans:        planStore{repo: planRepo, metrics: m},
		userRepo:     userRepo,
		metrics:      m,
		newID:        newID,
	}
}

func (s *templateService) SeedPredefined(ctx context.Context) error {
	count, err := s.templateRepo.CountPredefined(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	templates := predefinedTemplates()
	for _, t := range templates {
		t.IsActive = true
		if _, err := s.templateRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("seed template %q: %w", t.Name, err)
		}
	}
	log.Infof("seeded %d predefined templates", len(templates))
	return nil
}

func (s *templateService) ListTemplates(ctx context.Context, p Principal) ([]*domain.Template, error) {
	if !p.IsCoach() {
		return nil, ErrNotCoach
	}
	return s.templateRepo.ListActive(ctx, p.CoachID)
}

func (s *templateService) GetTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID) (*domain.Template, error) {
	if !p.IsCoach() {
		return nil, ErrNotCoach
	}
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if !template.IsActive || (!template.IsPredefined() && template.CreatedBy != p.CoachID) {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID) error {
	template, err := s.GetTemplate(ctx, p, templateID)
	if err != nil {
		return err
	}
	if template.IsPredefined() {
		return ErrPredefinedTemplate
	}

	if template.OriginalPlanID != nil {
		// The template goes away even if the source plan cannot be unmarked.
		if err := s.unmarkPlan(ctx, p, *template.OriginalPlanID, template.ID); err != nil {
			log.WithFields(log.Fields{
				"templateId": template.ID.Hex(),
				"planId":     template.OriginalPlanID.Hex(),
			}).Warnf("unmark template source plan: %s", err)
		}
	}

	if err := s.templateRepo.Deactivate(ctx, template.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	log.WithField("templateId", template.ID.Hex()).Info("template deleted")
	return nil
}

func (s *templateService) unmarkPlan(ctx context.Context, p Principal, planID, templateID primitive.ObjectID) error {
	plan, err := s.plans.loadForCoach(ctx, p, planID)
	if err != nil {
		return err
	}
	if plan.TemplateID == nil || *plan.TemplateID != templateID {
		return nil
	}
	plan.IsTemplate = false
	plan.TemplateID = nil
	return s.plans.save(ctx, plan)
}

// CreatePlanFromTemplate materializes a fresh plan for an athlete of the coach. The template
// tree is copied without ids or progress and normalized like a new plan.
func (s *templateService) CreatePlanFromTemplate(ctx context.Context, p Principal, templateID primitive.ObjectID, in PlanFromTemplateInput) (*domain.TrainingPlan, error) {
	template, err := s.GetTemplate(ctx, p, templateID)
	if err != nil {
		return nil, err
	}
	if in.AthleteID == primitive.NilObjectID {
		return nil, fmt.Errorf("%w: athleteId is required", ErrInvalidInput)
	}
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := assignableAthlete(ctx, s.userRepo, p, in.AthleteID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = template.Name
	}
	description := in.Description
	if description == "" {
		description = template.Description
	}

	plan := &domain.TrainingPlan{
		AthleteID:   in.AthleteID,
		CoachID:     p.CoachID,
		Name:        name,
		Description: description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		Sessions:    plantree.Normalize(s.newID, plantree.StripProgress(template.Sessions)),
	}
	if _, err := s.plans.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.metrics.CounterPlansCreated.Inc()

	if err := s.templateRepo.IncrementUsage(ctx, template.ID); err != nil {
		log.WithField("templateId", template.ID.Hex()).Warnf("increment template usage: %s", err)
	}

	log.WithFields(log.Fields{
		"planId":     plan.ID.Hex(),
		"templateId": template.ID.Hex(),
	}).Info("training plan created from template")
	return plan, nil
}
