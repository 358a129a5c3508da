package plantree

// SessionInput is a session as sent by a coach when authoring or editing a plan.
// Ids are optional; an id that does not resolve against the persisted tree mints a new node.
type SessionInput struct {
	SessionID    string                 `json:"sessionId"`
	SessionName  Field[string]          `json:"sessionName"`
	Date         Field[string]          `json:"date"`
	SessionNotes Field[string]          `json:"sessionNotes"`
	Exercises    Field[[]ExerciseInput] `json:"exercises"`
}

// ExerciseInput is an exercise as sent by a coach.
type ExerciseInput struct {
	ExerciseID         string                     `json:"exerciseId"`
	Name               Field[string]              `json:"name"`
	Sets               Field[int]                 `json:"sets"`
	Reps               Field[int]                 `json:"reps"`
	RPE                Field[float64]             `json:"rpe"`
	RIR                Field[float64]             `json:"rir"`
	RM                 Field[float64]             `json:"rm"`
	Weight             Field[float64]             `json:"weight"`
	Notes              Field[string]              `json:"notes"`
	PerformanceComment Field[string]              `json:"performanceComment"`
	MediaRef           Field[string]              `json:"mediaRef"`
	AthleteNotes       Field[string]              `json:"athleteNotes"`
	PerformedSets      Field[[]PerformedSetInput] `json:"performedSets"`
}

// PerformedSetInput is a performed set as sent by a coach (usually only on edits that
// resend the persisted tree).
type PerformedSetInput struct {
	SetID           string         `json:"setId"`
	Completed       Boolish        `json:"completed"`
	RepsPerformed   Field[int]     `json:"repsPerformed"`
	LoadUsed        Field[float64] `json:"loadUsed"`
	MeasureAchieved Field[float64] `json:"measureAchieved"`
}

// ExerciseFeedback is the athlete's report on one exercise. Only set fields are applied.
type ExerciseFeedback struct {
	Completed          Boolish
	PerformanceComment Field[string]
	AthleteNotes       Field[string]
	MediaRef           Field[string]
}

// SetResult is the athlete's report on one performed set, addressed by its id.
type SetResult struct {
	SetID           string         `json:"setId"`
	Completed       Boolish        `json:"completed"`
	RepsPerformed   Field[int]     `json:"repsPerformed"`
	LoadUsed        Field[float64] `json:"loadUsed"`
	MeasureAchieved Field[float64] `json:"measureAchieved"`
}
