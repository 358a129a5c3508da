package service

import (
	"context"
	"time"

	"alcyxob/coaching-app/internal/dashboard"
	"alcyxob/coaching-app/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DashboardService interface {
	// GetDashboard summarizes the plans of coachID. Only that coach may ask for it.
	GetDashboard(ctx context.Context, p Principal, coachID string) (*dashboard.Dashboard, error)
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	planRepo repository.TrainingPlanRepository
	userRepo repository.UserRepository
	location *time.Location
	now      func() time.Time
}

// NewDashboardService creates a new instance of dashboardService. Calendar days are bucketed
// in loc; now defaults to time.Now.
func NewDashboardService(planRepo repository.TrainingPlanRepository, userRepo repository.UserRepository, loc *time.Location, now func() time.Time) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		planRepo: planRepo,
		userRepo: userRepo,
		location: loc,
		now:      now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, p Principal, coachID string) (*dashboard.Dashboard, error) {
	if !p.IsCoach() {
		return nil, ErrNotCoach
	}
	if coachID != p.CoachID {
		return nil, ErrForeignDashboard
	}

	plans, err := s.planRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{}, len(plans))
	athleteIDs := make([]primitive.ObjectID, 0, len(plans))
	for _, plan := range plans {
		if _, ok := seen[plan.AthleteID]; !ok {
			seen[plan.AthleteID] = struct{}{}
			athleteIDs = append(athleteIDs, plan.AthleteID)
		}
	}

	names := make(map[primitive.ObjectID]string, len(athleteIDs))
	if len(athleteIDs) > 0 {
		athletes, err := s.userRepo.GetByIDs(ctx, athleteIDs)
		if err != nil {
			// Names are cosmetic, the numbers still stand.
			log.WithField("coachId", coachID).Warnf("load athlete names: %s", err)
		}
		for _, a := range athletes {
			names[a.ID] = a.FullName
		}
	}

	return dashboard.Aggregate(plans, names, s.now().In(s.location)), nil
}
