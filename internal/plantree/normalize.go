package plantree

import "alcyxob/coaching-app/internal/domain"

// Normalize returns the fully shaped form of a session tree:
//   - every session, exercise and performed set has an id that is unique within its parent;
//     ids already present are kept (the first of a duplicated id wins, later ones are re-minted),
//   - every exercise has exactly Sets performed sets, existing sets are kept by position and
//     sets <= 0 yields an empty list,
//   - set numbers follow position,
//   - derived completion flags are recomputed.
//
// Normalizing an already normalized tree returns an identical tree.
func Normalize(gen IDGenerator, sessions []domain.Session) []domain.Session {
	ids := make([]string, len(sessions))
	for i := range sessions {
		ids[i] = sessions[i].SessionID
	}
	ids = assignIDs(gen, domain.PrefixSession, ids)

	out := make([]domain.Session, 0, len(sessions))
	for i, s := range sessions {
		s.SessionID = ids[i]
		s.Exercises = normalizeExercises(gen, s.Exercises)
		RollupSession(&s)
		out = append(out, s)
	}
	return out
}

func normalizeExercises(gen IDGenerator, exercises []domain.Exercise) []domain.Exercise {
	ids := make([]string, len(exercises))
	for i := range exercises {
		ids[i] = exercises[i].ExerciseID
	}
	ids = assignIDs(gen, domain.PrefixExercise, ids)

	out := make([]domain.Exercise, 0, len(exercises))
	for i, e := range exercises {
		e.ExerciseID = ids[i]
		e.PerformedSets = resizeSets(gen, e.PerformedSets, e.Sets)
		out = append(out, e)
	}
	return out
}

// resizeSets grows or truncates sets to n, preserving existing sets by position.
func resizeSets(gen IDGenerator, sets []domain.PerformedSet, n int) []domain.PerformedSet {
	if n < 0 {
		n = 0
	}
	kept := sets
	if len(kept) > n {
		kept = kept[:n]
	}

	ids := make([]string, n)
	for i := range kept {
		ids[i] = kept[i].SetID
	}
	ids = assignIDs(gen, domain.PrefixPerformedSet, ids)

	out := make([]domain.PerformedSet, n)
	for i := range out {
		if i < len(kept) {
			out[i] = kept[i]
		}
		out[i].SetID = ids[i]
		out[i].SetNumber = i + 1
	}
	return out
}

// assignIDs keeps the first occurrence of every non-empty id and mints the rest.
// Existing ids are reserved before minting so a fresh id never steals one of them.
func assignIDs(gen IDGenerator, prefix string, ids []string) []string {
	taken := make(map[string]struct{}, len(ids))
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := taken[id]; dup {
			continue
		}
		taken[id] = struct{}{}
		out[i] = id
	}
	for i := range out {
		if out[i] == "" {
			out[i] = uniqueID(gen, prefix, taken)
		}
	}
	return out
}

// Build turns an authoring request into a normalized tree. Caller supplied ids are kept.
func Build(gen IDGenerator, incoming []SessionInput) []domain.Session {
	return Normalize(gen, mergeSessions(nil, incoming, true))
}

// StripProgress returns a copy of the tree with every identifier and every athlete-reported
// value removed, ready to be normalized into a fresh plan (e.g. from a template).
func StripProgress(sessions []domain.Session) []domain.Session {
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		s.SessionID = ""
		s.SessionNotes = nil
		s.Completed = false
		exercises := make([]domain.Exercise, 0, len(s.Exercises))
		for _, e := range s.Exercises {
			e.ExerciseID = ""
			e.Completed = false
			e.PerformanceComment = nil
			e.MediaRef = nil
			e.AthleteNotes = nil
			e.PerformedSets = nil
			exercises = append(exercises, e)
		}
		s.Exercises = exercises
		out = append(out, s)
	}
	return out
}
