package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/metrics"
	"alcyxob/coaching-app/internal/plantree"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/mocks"
	"alcyxob/coaching-app/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func setResults(t *testing.T, raw string) []plantree.SetResult {
	t.Helper()
	var sets []plantree.SetResult
	require.NoError(t, json.Unmarshal([]byte(raw), &sets))
	return sets
}

func TestSubmitPerformedSets_RollsUpOnlyWhenAllSetsDone(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	got, err := e.progressSvc.SubmitPerformedSets(e.ctx, e.athlete, plan.ID, "S-1", "E-1",
		setResults(t, `[{"setId": "PS-1", "completed": true, "repsPerformed": 10}]`))
	require.NoError(t, err)

	exercise := got.Sessions[0].Exercises[0]
	assert.True(t, exercise.PerformedSets[0].Completed)
	require.NotNil(t, exercise.PerformedSets[0].RepsPerformed)
	assert.Equal(t, 10, *exercise.PerformedSets[0].RepsPerformed)
	assert.False(t, exercise.Completed)
	assert.False(t, got.Sessions[0].Completed)

	got, err = e.progressSvc.SubmitPerformedSets(e.ctx, e.athlete, plan.ID, "S-1", "E-1",
		setResults(t, `[
			{"setId": "PS-1", "completed": true},
			{"setId": "PS-2", "completed": true},
			{"setId": "PS-3", "completed": "true"}
		]`))
	require.NoError(t, err)
	assert.True(t, got.Sessions[0].Exercises[0].Completed)
	assert.True(t, got.Sessions[0].Completed)

	stored, err := e.plans.GetByID(e.ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, stored.Sessions[0].Completed)
	assert.Equal(t, int64(3), stored.Version)
	assert.Equal(t, 2.0, testutil.ToFloat64(e.metrics.CounterProgressMutations.WithLabelValues(metrics.OpPerformedSets, "ok")))
}

func TestSubmitPerformedSets_SkipsUnknownSetIDs(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	got, err := e.progressSvc.SubmitPerformedSets(e.ctx, e.athlete, plan.ID, "S-1", "E-1",
		setResults(t, `[{"setId": "PS-404", "completed": true}, {"setId": "PS-2", "loadUsed": 80.5}]`))
	require.NoError(t, err)

	sets := got.Sessions[0].Exercises[0].PerformedSets
	require.Len(t, sets, 3)
	require.NotNil(t, sets[1].LoadUsed)
	assert.Equal(t, 80.5, *sets[1].LoadUsed)
	for _, ps := range sets {
		assert.False(t, ps.Completed)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.CounterSkippedSets))
}

func TestProgress_OwnershipIsReportedAsNotFound(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)
	stranger := e.addAthlete(t, "COACH-AAAAAA", "Someone Else")

	fb := plantree.ExerciseFeedback{Completed: plantree.BoolOf(true), AthleteNotes: plantree.Of("mine now")}

	for name, caller := range map[string]service.Principal{
		"other athlete": stranger,
		"owning coach":  e.coach,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.progressSvc.SubmitExerciseFeedback(e.ctx, caller, plan.ID, "S-1", "E-1", fb)
			assert.ErrorIs(t, err, service.ErrPlanNotFound)
			assert.ErrorIs(t, err, service.ErrNotFound)

			_, err = e.progressSvc.UpdateSessionNotes(e.ctx, caller, plan.ID, "S-1", plantree.Of("hi"))
			assert.ErrorIs(t, err, service.ErrPlanNotFound)

			_, err = e.progressSvc.SubmitPerformedSets(e.ctx, caller, plan.ID, "S-1", "E-1",
				setResults(t, `[{"setId": "PS-1", "completed": true}]`))
			assert.ErrorIs(t, err, service.ErrPlanNotFound)
		})
	}

	stored, err := e.plans.GetByID(e.ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
	assert.Nil(t, stored.Sessions[0].Exercises[0].AthleteNotes)
	for _, op := range []string{metrics.OpExerciseFeedback, metrics.OpSessionNotes, metrics.OpPerformedSets} {
		assert.Equal(t, 2.0, testutil.ToFloat64(e.metrics.CounterProgressMutations.WithLabelValues(op, "not_found")))
	}
}

func TestProgress_UnknownNodes(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	_, err := e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-404", "E-1", plantree.ExerciseFeedback{})
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	_, err = e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-404", plantree.ExerciseFeedback{})
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	_, err = e.progressSvc.SubmitPerformedSets(e.ctx, e.athlete, primitive.NewObjectID(), "S-1", "E-1", nil)
	assert.ErrorIs(t, err, service.ErrPlanNotFound)
}

func TestSubmitExerciseFeedback_AppliesProvidedFields(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	got, err := e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{
		Completed:          plantree.BoolOf(true),
		PerformanceComment: plantree.Of("felt strong"),
	})
	require.NoError(t, err)

	exercise := got.Sessions[0].Exercises[0]
	assert.True(t, exercise.Completed)
	assert.True(t, got.Sessions[0].Completed)
	require.NotNil(t, exercise.PerformanceComment)
	assert.Equal(t, "felt strong", *exercise.PerformanceComment)
	assert.Nil(t, exercise.AthleteNotes)

	// Only notes are sent: the comment and completion stay.
	got, err = e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{
		AthleteNotes: plantree.Of("knee ok"),
	})
	require.NoError(t, err)
	exercise = got.Sessions[0].Exercises[0]
	assert.True(t, exercise.Completed)
	require.NotNil(t, exercise.PerformanceComment)
	require.NotNil(t, exercise.AthleteNotes)
	assert.Equal(t, "knee ok", *exercise.AthleteNotes)

	got, err = e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{
		Completed: plantree.BoolOf(false),
	})
	require.NoError(t, err)
	assert.False(t, got.Sessions[0].Exercises[0].Completed)
	assert.False(t, got.Sessions[0].Completed)
}

func TestSubmitExerciseFeedback_MediaRef(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	_, err := e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{
		MediaRef: plantree.Of("exercise-media/elsewhere/S-1/E-1/x.mp4"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidMediaRef)

	uploadURL, first, err := e.progressSvc.RequestMediaUploadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1", "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, uploadURL, first)
	assert.True(t, strings.HasPrefix(first, "exercise-media/"+plan.ID.Hex()+"/S-1/E-1/"))
	assert.True(t, strings.HasSuffix(first, ".mp4"))

	_, err = e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{MediaRef: plantree.Of(first)})
	require.NoError(t, err)

	_, second, err := e.progressSvc.RequestMediaUploadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1", "image/png")
	require.NoError(t, err)
	got, err := e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{MediaRef: plantree.Of(second)})
	require.NoError(t, err)
	require.NotNil(t, got.Sessions[0].Exercises[0].MediaRef)
	assert.Equal(t, second, *got.Sessions[0].Exercises[0].MediaRef)
	assert.Equal(t, []string{first}, e.storage.Deleted())

	downloadURL, err := e.progressSvc.GetMediaDownloadURL(e.ctx, e.coach, plan.ID, "S-1", "E-1")
	require.NoError(t, err)
	assert.Contains(t, downloadURL, second)

	got, err = e.progressSvc.SubmitExerciseFeedback(e.ctx, e.athlete, plan.ID, "S-1", "E-1", plantree.ExerciseFeedback{MediaRef: plantree.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.Sessions[0].Exercises[0].MediaRef)
	assert.Equal(t, []string{first, second}, e.storage.Deleted())

	_, err = e.progressSvc.GetMediaDownloadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1")
	assert.ErrorIs(t, err, service.ErrMediaNotFound)
}

func TestRequestMediaUploadURL_Rejections(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	_, _, err := e.progressSvc.RequestMediaUploadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1", "application/pdf")
	assert.ErrorIs(t, err, service.ErrUnsupportedMediaType)

	_, _, err = e.progressSvc.RequestMediaUploadURL(e.ctx, e.coach, plan.ID, "S-1", "E-1", "video/mp4")
	assert.ErrorIs(t, err, service.ErrPlanNotFound)

	e.storage.failing = true
	_, _, err = e.progressSvc.RequestMediaUploadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1", "video/mp4")
	assert.ErrorIs(t, err, service.ErrMediaURL)

	disabled := service.NewProgressService(e.plans, nil, e.metrics, 0)
	_, _, err = disabled.RequestMediaUploadURL(e.ctx, e.athlete, plan.ID, "S-1", "E-1", "video/mp4")
	assert.ErrorIs(t, err, service.ErrMediaDisabled)
}

func TestUpdateSessionNotes(t *testing.T) {
	e := newEnv(t)
	plan := e.createS1E1(t)

	got, err := e.progressSvc.UpdateSessionNotes(e.ctx, e.athlete, plan.ID, "S-1", plantree.Of("slept badly"))
	require.NoError(t, err)
	require.NotNil(t, got.Sessions[0].SessionNotes)
	assert.Equal(t, "slept badly", *got.Sessions[0].SessionNotes)

	got, err = e.progressSvc.UpdateSessionNotes(e.ctx, e.athlete, plan.ID, "S-1", plantree.Null[string]())
	require.NoError(t, err)
	assert.Nil(t, got.Sessions[0].SessionNotes)
}

func TestProgress_VersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	planRepo := mocks.NewMockTrainingPlanRepository(ctrl)
	m := metrics.NewTestManager()
	svc := service.NewProgressService(planRepo, nil, m, time.Minute)

	athlete := service.Principal{UserID: primitive.NewObjectID(), Role: domain.RoleAthlete}
	plan := &domain.TrainingPlan{
		ID:        primitive.NewObjectID(),
		AthleteID: athlete.UserID,
		CoachID:   "COACH-AAAAAA",
		Version:   4,
		Sessions:  []domain.Session{{SessionID: "S-1", Exercises: []domain.Exercise{}}},
	}

	planRepo.EXPECT().GetByID(gomock.Any(), plan.ID).Return(plan, nil)
	planRepo.EXPECT().Replace(gomock.Any(), plan).Return(repository.ErrVersionConflict)

	_, err := svc.UpdateSessionNotes(context.Background(), athlete, plan.ID, "S-1", plantree.Of("late"))
	assert.ErrorIs(t, err, service.ErrPlanModified)
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterVersionConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterProgressMutations.WithLabelValues(metrics.OpSessionNotes, "conflict")))
}
