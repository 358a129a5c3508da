package service_test

import (
	"context"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"
	"alcyxob/coaching-app/internal/repository/memory"
	"alcyxob/coaching-app/internal/repository/mocks"
	"alcyxob/coaching-app/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository(memory.NewStore())
	auth := service.NewAuthService(users, testSecret, time.Hour, nil)

	coach, err := auth.Register(ctx, service.RegisterInput{
		FullName: "Coach Carter",
		Email:    " Carter@Example.com ",
		Password: "hunter22",
		Role:     domain.RoleCoach,
	})
	require.NoError(t, err)
	assert.Equal(t, "carter@example.com", coach.Email)
	assert.Regexp(t, `^COACH-[A-Z0-9]{6}$`, coach.CoachID)
	assert.Empty(t, coach.PasswordHash)

	athlete, err := auth.Register(ctx, service.RegisterInput{
		FullName: "Alex",
		Email:    "alex@example.com",
		Password: "hunter22",
		Role:     domain.RoleAthlete,
		CoachID:  coach.CoachID,
	})
	require.NoError(t, err)
	assert.Equal(t, coach.CoachID, athlete.CoachID)

	_, err = auth.Register(ctx, service.RegisterInput{FullName: "Again", Email: "carter@example.com", Password: "x", Role: domain.RoleAthlete})
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	_, err = auth.Register(ctx, service.RegisterInput{FullName: "Lost", Email: "lost@example.com", Password: "x", Role: domain.RoleAthlete, CoachID: "COACH-NOPE00"})
	assert.ErrorIs(t, err, service.ErrCoachNotFound)

	_, err = auth.Register(ctx, service.RegisterInput{FullName: "Admin", Email: "admin@example.com", Password: "x", Role: "admin"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	token, user, err := auth.Login(ctx, "CARTER@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, coach.ID, user.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.Equal(t, coach.ID.Hex(), claims["uid"])
	assert.Equal(t, string(domain.RoleCoach), claims["role"])
	assert.Equal(t, coach.CoachID, claims["coachId"])

	_, _, err = auth.Login(ctx, "carter@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	athletes, err := auth.ListAthletes(ctx, service.Principal{UserID: coach.ID, Role: domain.RoleCoach, CoachID: coach.CoachID})
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, athlete.ID, athletes[0].ID)
	assert.Empty(t, athletes[0].PasswordHash)

	_, err = auth.ListAthletes(ctx, service.Principal{UserID: athlete.ID, Role: domain.RoleAthlete})
	assert.ErrorIs(t, err, service.ErrNotCoach)
}

func TestRegister_RetriesCoachCodeCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	codes := []string{"COACH-TAKEN1", "COACH-FRESH1"}
	newID := func(prefix string) string {
		code := codes[0]
		codes = codes[1:]
		return code
	}
	auth := service.NewAuthService(users, testSecret, time.Hour, newID)

	gomock.InOrder(
		users.EXPECT().GetByEmail(gomock.Any(), "c@example.com").Return(nil, repository.ErrNotFound),
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(primitive.NilObjectID, repository.ErrDuplicate),
		users.EXPECT().GetByEmail(gomock.Any(), "c@example.com").Return(nil, repository.ErrNotFound),
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
			u.ID = primitive.NewObjectID()
			return u.ID, nil
		}),
	)

	coach, err := auth.Register(context.Background(), service.RegisterInput{
		FullName: "C", Email: "c@example.com", Password: "pw", Role: domain.RoleCoach,
	})
	require.NoError(t, err)
	assert.Equal(t, "COACH-FRESH1", coach.CoachID)
}

func TestGetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	auth := service.NewAuthService(users, testSecret, 0, nil)

	id := primitive.NewObjectID()
	users.EXPECT().GetByID(gomock.Any(), id).Return(&domain.User{ID: id, PasswordHash: "hash"}, nil)
	users.EXPECT().GetByID(gomock.Any(), gomock.Not(id)).Return(nil, repository.ErrNotFound)

	u, err := auth.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	_, err = auth.GetUser(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
