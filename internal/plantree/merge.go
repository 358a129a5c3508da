package plantree

import "alcyxob/coaching-app/internal/domain"

// Merge reconciles an incoming, possibly partial, session list against the persisted one.
//
// Incoming nodes are matched to persisted nodes by logical id at every level. A node whose id
// is omitted or does not resolve is minted with a fresh id. For each attribute the incoming
// value wins when provided, an explicit null clears a nullable attribute, and an omitted
// attribute keeps the persisted value. The incoming list defines which sessions remain, and a
// resent exercise list defines which exercises remain. Performed sets are never dropped by
// omission; only the exercise's set count trims them. The result is normalized.
func Merge(gen IDGenerator, existing []domain.Session, incoming []SessionInput) []domain.Session {
	return Normalize(gen, mergeSessions(existing, incoming, false))
}

func mergeSessions(existing []domain.Session, incoming []SessionInput, keepIDs bool) []domain.Session {
	byID := make(map[string]*domain.Session, len(existing))
	for i := range existing {
		byID[existing[i].SessionID] = &existing[i]
	}

	out := make([]domain.Session, 0, len(incoming))
	for _, in := range incoming {
		var s domain.Session
		if prev, ok := byID[in.SessionID]; ok && in.SessionID != "" {
			s = *prev
		} else if keepIDs {
			s.SessionID = in.SessionID
		}

		s.SessionName = in.SessionName.Or(s.SessionName)
		s.Date = in.Date.Or(s.Date)
		s.SessionNotes = in.SessionNotes.Ptr(s.SessionNotes)
		if in.Exercises.Set {
			s.Exercises = mergeExercises(s.Exercises, in.Exercises.Value, keepIDs)
		}
		out = append(out, s)
	}
	return out
}

func mergeExercises(existing []domain.Exercise, incoming []ExerciseInput, keepIDs bool) []domain.Exercise {
	byID := make(map[string]*domain.Exercise, len(existing))
	for i := range existing {
		byID[existing[i].ExerciseID] = &existing[i]
	}

	out := make([]domain.Exercise, 0, len(incoming))
	for _, in := range incoming {
		var e domain.Exercise
		if prev, ok := byID[in.ExerciseID]; ok && in.ExerciseID != "" {
			e = *prev
		} else if keepIDs {
			e.ExerciseID = in.ExerciseID
		}

		e.Name = in.Name.Or(e.Name)
		e.Sets = in.Sets.Or(e.Sets)
		e.Reps = in.Reps.Or(e.Reps)
		e.RPE = in.RPE.Ptr(e.RPE)
		e.RIR = in.RIR.Ptr(e.RIR)
		e.RM = in.RM.Ptr(e.RM)
		e.Weight = in.Weight.Ptr(e.Weight)
		e.Notes = in.Notes.Ptr(e.Notes)
		e.PerformanceComment = in.PerformanceComment.Ptr(e.PerformanceComment)
		e.MediaRef = in.MediaRef.Ptr(e.MediaRef)
		e.AthleteNotes = in.AthleteNotes.Ptr(e.AthleteNotes)
		if in.PerformedSets.Set {
			e.PerformedSets = mergeSets(e.PerformedSets, in.PerformedSets.Value, keepIDs)
		}
		out = append(out, e)
	}
	return out
}

// mergeSets applies incoming results onto the persisted sets in place. Sets the caller did not
// mention keep their position and progress; unknown ids are appended. The declared set count,
// not the incoming list, decides how many sets remain.
func mergeSets(existing []domain.PerformedSet, incoming []PerformedSetInput, keepIDs bool) []domain.PerformedSet {
	out := make([]domain.PerformedSet, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	index := make(map[string]int, len(out))
	for i := range out {
		if out[i].SetID != "" {
			index[out[i].SetID] = i
		}
	}

	for _, in := range incoming {
		if i, ok := index[in.SetID]; ok && in.SetID != "" {
			applySetFields(&out[i], in.Completed, in.RepsPerformed, in.LoadUsed, in.MeasureAchieved)
			continue
		}
		var ps domain.PerformedSet
		if keepIDs {
			ps.SetID = in.SetID
		}
		applySetFields(&ps, in.Completed, in.RepsPerformed, in.LoadUsed, in.MeasureAchieved)
		out = append(out, ps)
		if ps.SetID != "" {
			index[ps.SetID] = len(out) - 1
		}
	}
	return out
}

func applySetFields(ps *domain.PerformedSet, completed Boolish, reps Field[int], load, measure Field[float64]) {
	if completed.Set {
		ps.Completed = completed.Value
	}
	ps.RepsPerformed = reps.Ptr(ps.RepsPerformed)
	ps.LoadUsed = load.Ptr(ps.LoadUsed)
	ps.MeasureAchieved = measure.Ptr(ps.MeasureAchieved)
}
