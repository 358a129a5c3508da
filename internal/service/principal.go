package service

import (
	"alcyxob/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated caller, as carried by the access token.
type Principal struct {
	UserID  primitive.ObjectID
	Role    domain.Role
	CoachID string // Own coach code for coaches, linked coach code (if any) for athletes
}

func (p Principal) IsCoach() bool {
	return p.Role == domain.RoleCoach && p.CoachID != ""
}

func (p Principal) IsAthlete() bool {
	return p.Role == domain.RoleAthlete && p.UserID != primitive.NilObjectID
}

// canRead reports whether the caller may see the plan: its coach or its athlete.
func (p Principal) canRead(plan *domain.TrainingPlan) bool {
	return (p.IsCoach() && plan.IsOwnedByCoach(p.CoachID)) ||
		(p.IsAthlete() && plan.IsOwnedByAthlete(p.UserID))
}
