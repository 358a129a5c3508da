package memory_test

import (
	"context"
	"sync"
	"testing"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPlan(coachID string, athleteID primitive.ObjectID) *domain.TrainingPlan {
	notes := "warm up well"
	return &domain.TrainingPlan{
		AthleteID: athleteID,
		CoachID:   coachID,
		Name:      "Block",
		Sessions: []domain.Session{{
			SessionID:    "S-AAAAAA",
			SessionNotes: &notes,
			Exercises:    []domain.Exercise{},
		}},
	}
}

func TestTrainingPlanRepository_CreateAndGetAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingPlanRepository(memory.NewStore())

	plan := newPlan("COACH-AAAAAA", primitive.NewObjectID())
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, int64(1), plan.Version)

	plan.Sessions[0].SessionName = "changed after save"

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Sessions[0].SessionName)
	require.NotNil(t, got.Sessions[0].SessionNotes)
	assert.Equal(t, "warm up well", *got.Sessions[0].SessionNotes)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrainingPlanRepository_ReplaceIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingPlanRepository(memory.NewStore())

	plan := newPlan("COACH-AAAAAA", primitive.NewObjectID())
	_, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)

	first.Name = "first writer"
	require.NoError(t, repo.Replace(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Name = "second writer"
	assert.ErrorIs(t, repo.Replace(ctx, second), repository.ErrVersionConflict)

	stored, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", stored.Name)
	assert.Equal(t, int64(2), stored.Version)

	ghost := newPlan("COACH-AAAAAA", primitive.NewObjectID())
	ghost.ID = primitive.NewObjectID()
	assert.ErrorIs(t, repo.Replace(ctx, ghost), repository.ErrNotFound)
}

func TestTrainingPlanRepository_ConcurrentReplaceHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingPlanRepository(memory.NewStore())
	plan := newPlan("COACH-AAAAAA", primitive.NewObjectID())
	_, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		loaded, err := repo.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		wg.Add(1)
		go func(p *domain.TrainingPlan) {
			defer wg.Done()
			results <- repo.Replace(ctx, p)
		}(loaded)
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, repository.ErrVersionConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflicts)
}

func TestTrainingPlanRepository_QueriesAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingPlanRepository(memory.NewStore())
	athleteA, athleteB := primitive.NewObjectID(), primitive.NewObjectID()

	for _, p := range []*domain.TrainingPlan{
		newPlan("COACH-AAAAAA", athleteA),
		newPlan("COACH-AAAAAA", athleteB),
		newPlan("COACH-BBBBBB", athleteA),
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	byCoach, err := repo.GetByCoachID(ctx, "COACH-AAAAAA")
	require.NoError(t, err)
	assert.Len(t, byCoach, 2)

	byAthlete, err := repo.GetByAthleteID(ctx, athleteA)
	require.NoError(t, err)
	assert.Len(t, byAthlete, 2)

	both, err := repo.GetByCoachAndAthleteID(ctx, "COACH-BBBBBB", athleteA)
	require.NoError(t, err)
	require.Len(t, both, 1)

	none, err := repo.GetByCoachID(ctx, "COACH-ZZZZZZ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.ErrorIs(t, repo.Delete(ctx, both[0].ID, "COACH-AAAAAA"), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, both[0].ID, "COACH-BBBBBB"))
	_, err = repo.GetByID(ctx, both[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(memory.NewStore())

	coach := &domain.User{FullName: "Carla Coach", Email: "c@example.com", PasswordHash: "x", Role: domain.RoleCoach, CoachID: "COACH-AAAAAA"}
	_, err := repo.Create(ctx, coach)
	require.NoError(t, err)

	athlete := &domain.User{FullName: "Ana Athlete", Email: "a@example.com", PasswordHash: "x", Role: domain.RoleAthlete, CoachID: "COACH-AAAAAA"}
	_, err = repo.Create(ctx, athlete)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "c@example.com", PasswordHash: "x", Role: domain.RoleAthlete})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	_, err = repo.Create(ctx, &domain.User{Email: "d@example.com", PasswordHash: "x", Role: domain.RoleCoach, CoachID: "COACH-AAAAAA"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, athlete.ID, got.ID)

	athletes, err := repo.GetAthletesByCoachID(ctx, "COACH-AAAAAA")
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, "Ana Athlete", athletes[0].FullName)

	users, err := repo.GetByIDs(ctx, []primitive.ObjectID{coach.ID, athlete.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTemplateRepository(memory.NewStore())

	predefined := &domain.Template{Name: "Strength", Type: domain.TemplatePredefined, IsActive: true}
	mine := &domain.Template{Name: "Mine", Type: domain.TemplateUserCreated, CreatedBy: "COACH-AAAAAA", IsActive: true}
	theirs := &domain.Template{Name: "Theirs", Type: domain.TemplateUserCreated, CreatedBy: "COACH-BBBBBB", IsActive: true}
	for _, tpl := range []*domain.Template{predefined, mine, theirs} {
		_, err := repo.Create(ctx, tpl)
		require.NoError(t, err)
	}

	require.NoError(t, repo.IncrementUsage(ctx, mine.ID))
	list, err := repo.ListActive(ctx, "COACH-AAAAAA")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mine", list[0].Name)

	require.NoError(t, repo.Deactivate(ctx, mine.ID))
	list, err = repo.ListActive(ctx, "COACH-AAAAAA")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Strength", list[0].Name)

	n, err := repo.CountPredefined(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, repo.IncrementUsage(ctx, primitive.NewObjectID()), repository.ErrNotFound)
}
