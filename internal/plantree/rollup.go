package plantree

import "alcyxob/coaching-app/internal/domain"

// RollupExercise derives Completed from the performed sets: true iff there is at least one
// set and every set is completed.
func RollupExercise(e *domain.Exercise) {
	if len(e.PerformedSets) == 0 {
		e.Completed = false
		return
	}
	for _, ps := range e.PerformedSets {
		if !ps.Completed {
			e.Completed = false
			return
		}
	}
	e.Completed = true
}

// RollupSession re-derives every exercise of the session, then the session itself: true iff
// there is at least one exercise and every exercise is completed.
func RollupSession(s *domain.Session) {
	completed := len(s.Exercises) > 0
	for i := range s.Exercises {
		RollupExercise(&s.Exercises[i])
		if !s.Exercises[i].Completed {
			completed = false
		}
	}
	s.Completed = completed
}
