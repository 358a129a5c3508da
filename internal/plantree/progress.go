package plantree

import "alcyxob/coaching-app/internal/domain"

// FindSession returns the session with the given logical id, or nil.
func FindSession(plan *domain.TrainingPlan, sessionID string) *domain.Session {
	if sessionID == "" {
		return nil
	}
	for i := range plan.Sessions {
		if plan.Sessions[i].SessionID == sessionID {
			return &plan.Sessions[i]
		}
	}
	return nil
}

// FindExercise returns the exercise with the given logical id, or nil.
func FindExercise(session *domain.Session, exerciseID string) *domain.Exercise {
	if exerciseID == "" {
		return nil
	}
	for i := range session.Exercises {
		if session.Exercises[i].ExerciseID == exerciseID {
			return &session.Exercises[i]
		}
	}
	return nil
}

// FindPerformedSet returns the performed set with the given logical id, or nil.
func FindPerformedSet(exercise *domain.Exercise, setID string) *domain.PerformedSet {
	if setID == "" {
		return nil
	}
	for i := range exercise.PerformedSets {
		if exercise.PerformedSets[i].SetID == setID {
			return &exercise.PerformedSets[i]
		}
	}
	return nil
}

// ApplyExerciseFeedback writes the provided feedback attributes onto the exercise.
// Exercise completion is derived from its sets, so an explicit completed flag is applied to
// every performed set; the caller rolls the session up afterwards.
func ApplyExerciseFeedback(e *domain.Exercise, fb ExerciseFeedback) {
	if fb.Completed.Set {
		for i := range e.PerformedSets {
			e.PerformedSets[i].Completed = fb.Completed.Value
		}
	}
	e.PerformanceComment = fb.PerformanceComment.Ptr(e.PerformanceComment)
	e.AthleteNotes = fb.AthleteNotes.Ptr(e.AthleteNotes)
	e.MediaRef = fb.MediaRef.Ptr(e.MediaRef)
}

// ApplySetResults writes each result onto the performed set with the same id. Results whose
// id is not found are skipped and returned.
func ApplySetResults(e *domain.Exercise, results []SetResult) (skipped []string) {
	for _, r := range results {
		ps := FindPerformedSet(e, r.SetID)
		if ps == nil {
			skipped = append(skipped, r.SetID)
			continue
		}
		applySetFields(ps, r.Completed, r.RepsPerformed, r.LoadUsed, r.MeasureAchieved)
	}
	return skipped
}
