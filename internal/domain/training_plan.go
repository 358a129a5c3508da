// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identifier prefixes for the logical ids of nodes inside a plan document.
const (
	PrefixSession      = "S"
	PrefixExercise     = "E"
	PrefixPerformedSet = "PS"
)

// TrainingPlan is a coach-authored, athlete-assigned program stored as one document.
// The storage id (ID) is internal; nodes inside the plan are addressed by their logical ids.
type TrainingPlan struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AthleteID   primitive.ObjectID  `bson:"athleteId" json:"athleteId"` // Athlete owner
	CoachID     string              `bson:"coachId" json:"coachId"`     // Coach code of the owning coach (COACH-XXXXXX)
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description" json:"description"`
	StartDate   time.Time           `bson:"startDate" json:"startDate"` // Inclusive
	EndDate     time.Time           `bson:"endDate" json:"endDate"`     // Inclusive
	Sessions    []Session           `bson:"sessions" json:"sessions"`
	IsTemplate  bool                `bson:"isTemplate" json:"isTemplate"`
	TemplateID  *primitive.ObjectID `bson:"templateId" json:"templateId"`
	Version     int64               `bson:"version" json:"version"` // Bumped on every whole-document write
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Session is one scheduled workout within a plan.
type Session struct {
	SessionID    string     `bson:"sessionId" json:"sessionId"`
	SessionName  string     `bson:"sessionName" json:"sessionName"`
	Date         string     `bson:"date" json:"date"` // Opaque, e.g. "2025-01-05" or "Monday"
	SessionNotes *string    `bson:"sessionNotes" json:"sessionNotes"`
	Completed    bool       `bson:"completed" json:"completed"` // Derived from exercises
	Exercises    []Exercise `bson:"exercises" json:"exercises"`
}

// Exercise is one prescribed movement within a session.
type Exercise struct {
	ExerciseID string   `bson:"exerciseId" json:"exerciseId"`
	Name       string   `bson:"name" json:"name"`
	Sets       int      `bson:"sets" json:"sets"`
	Reps       int      `bson:"reps" json:"reps"`
	RPE        *float64 `bson:"rpe" json:"rpe"`
	RIR        *float64 `bson:"rir" json:"rir"`
	RM         *float64 `bson:"rm" json:"rm"`         // Estimated max target
	Weight     *float64 `bson:"weight" json:"weight"` // Prescribed load
	Notes      *string  `bson:"notes" json:"notes"`   // Coach notes

	// Athlete feedback
	Completed          bool    `bson:"completed" json:"completed"` // Derived from performed sets
	PerformanceComment *string `bson:"performanceComment" json:"performanceComment"`
	MediaRef           *string `bson:"mediaRef" json:"mediaRef"` // Object key owned by media storage
	AthleteNotes       *string `bson:"athleteNotes" json:"athleteNotes"`

	PerformedSets []PerformedSet `bson:"performedSets" json:"performedSets"` // len == Sets
}

// PerformedSet is the athlete's logged outcome for one set of an exercise.
type PerformedSet struct {
	SetID           string   `bson:"setId" json:"setId"`
	SetNumber       int      `bson:"setNumber" json:"setNumber"` // 1-based, matches position
	Completed       bool     `bson:"completed" json:"completed"`
	RepsPerformed   *int     `bson:"repsPerformed" json:"repsPerformed"`
	LoadUsed        *float64 `bson:"loadUsed" json:"loadUsed"`
	MeasureAchieved *float64 `bson:"measureAchieved" json:"measureAchieved"` // For non rep-based exercises
}

// IsOwnedByAthlete reports whether the athlete is the owner of the plan.
func (p *TrainingPlan) IsOwnedByAthlete(athleteID primitive.ObjectID) bool {
	return athleteID != primitive.NilObjectID && p.AthleteID == athleteID
}

// IsOwnedByCoach reports whether the coach code owns the plan.
func (p *TrainingPlan) IsOwnedByCoach(coachID string) bool {
	return coachID != "" && p.CoachID == coachID
}

// HasIncompleteSession reports whether at least one session is still pending.
func (p *TrainingPlan) HasIncompleteSession() bool {
	for _, s := range p.Sessions {
		if !s.Completed {
			return true
		}
	}
	return false
}

// MediaRefs returns every media reference recorded in the plan.
func (p *TrainingPlan) MediaRefs() []string {
	var refs []string
	for _, s := range p.Sessions {
		for _, e := range s.Exercises {
			if e.MediaRef != nil && *e.MediaRef != "" {
				refs = append(refs, *e.MediaRef)
			}
		}
	}
	return refs
}
